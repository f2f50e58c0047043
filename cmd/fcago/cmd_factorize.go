package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/hupe1980/fcago/enumerate"
	"github.com/hupe1980/fcago/grecon"
	"github.com/spf13/cobra"
)

type stepJSON struct {
	conceptJSON
	Coverage int `json:"coverage"`
}

type factorizeJSON struct {
	Factors   []stepJSON `json:"factors"`
	Cells     int        `json:"cells"`
	Uncovered int        `json:"uncovered"`
}

func newFactorizeCmd(g *globalFlags) *cobra.Command {
	var (
		parallelism int
		canonical   bool
	)

	cmd := &cobra.Command{
		Use:   "factorize <snapshot>",
		Short: "Cover the relation greedily with formal concepts (GreCon)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, logger, err := g.load(args[0])
			if err != nil {
				return err
			}

			res, err := grecon.Factorize(cmd.Context(), c, enumerate.NextClosure{}, func(o *grecon.Options) {
				o.Parallelism = parallelism
				o.Logger = logger
				o.Metrics = g.collector()
				if canonical {
					o.Order = grecon.CanonicalOrder
				}
			})
			if err != nil {
				return err
			}

			return writeResult(cmd.OutOrStdout(), res, g.json)
		},
	}
	cmd.Flags().IntVar(&parallelism, "parallelism", runtime.GOMAXPROCS(0), "goroutines scanning candidates per step")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "break ties by concept order instead of enumeration order")
	return cmd
}

// writeResult prints res as text or JSON. It returns ErrIncompleteConceptSet
// after printing when cells remain uncovered.
func writeResult(w io.Writer, res *grecon.Result, asJSON bool) error {
	if asJSON {
		doc := factorizeJSON{
			Factors:   make([]stepJSON, len(res.Steps)),
			Cells:     res.Cells,
			Uncovered: res.Uncovered,
		}
		for i, s := range res.Steps {
			doc.Factors[i] = stepJSON{conceptJSON: toJSON(s.Concept), Coverage: s.Coverage}
		}
		if err := writeJSON(w, doc); err != nil {
			return err
		}
		return res.Verify()
	}
	for i, s := range res.Steps {
		fmt.Fprintf(w, "%d\t%d\t%v\n", i+1, s.Coverage, s.Concept)
	}
	fmt.Fprintf(w, "%d factors cover %d of %d cells\n", len(res.Steps), res.Cells-res.Uncovered, res.Cells)
	return res.Verify()
}
