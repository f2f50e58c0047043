package main

import (
	"errors"
	"fmt"

	"github.com/hupe1980/fcago"
	"github.com/spf13/cobra"
)

type infoJSON struct {
	Name       string   `json:"name,omitempty"`
	Objects    []string `json:"objects"`
	Attributes []string `json:"attributes"`
	Cells      int      `json:"cells"`
	Density    float64  `json:"density"`
}

func newInfoCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info <snapshot>",
		Short: "Print the shape, labels and density of a context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := g.load(args[0])
			if err != nil {
				return err
			}

			density, err := c.Density()
			if err != nil && !errors.Is(err, fcago.ErrEmptyContext) {
				return err
			}
			cells := 0
			for _, row := range c.Rows() {
				cells += row.Count()
			}

			out := cmd.OutOrStdout()
			if g.json {
				return writeJSON(out, infoJSON{
					Name:       c.Name(),
					Objects:    c.Objects().Labels(),
					Attributes: c.Attributes().Labels(),
					Cells:      cells,
					Density:    density,
				})
			}
			fmt.Fprintln(out, c)
			fmt.Fprintf(out, "objects:    %v\n", c.Objects().Labels())
			fmt.Fprintf(out, "attributes: %v\n", c.Attributes().Labels())
			fmt.Fprintf(out, "cells:      %d\n", cells)
			fmt.Fprintf(out, "density:    %.4f\n", density)
			return nil
		},
	}
}
