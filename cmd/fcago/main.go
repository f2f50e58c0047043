// Command fcago inspects, converts and factorizes formal context snapshots
// written by fcago.WriteSnapshot.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fcago:", err)
		os.Exit(1)
	}
}
