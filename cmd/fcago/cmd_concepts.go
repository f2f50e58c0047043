package main

import (
	"fmt"

	"github.com/hupe1980/fcago/enumerate"
	"github.com/spf13/cobra"
)

func newConceptsCmd(g *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "concepts <snapshot>",
		Short: "List the formal concepts of a context in lectic order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := g.load(args[0])
			if err != nil {
				return err
			}

			concepts, err := enumerate.NextClosure{Limit: limit}.Concepts(cmd.Context(), c)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if g.json {
				list := make([]conceptJSON, len(concepts))
				for i, concept := range concepts {
					list[i] = toJSON(concept)
				}
				return writeJSON(out, list)
			}
			for _, concept := range concepts {
				fmt.Fprintln(out, concept)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many concepts (0 = all)")
	return cmd
}
