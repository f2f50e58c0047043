package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/fcago"
	"github.com/spf13/cobra"
)

func parseCompression(s string) (fcago.CompressionType, error) {
	switch strings.ToLower(s) {
	case "none":
		return fcago.CompressionNone, nil
	case "lz4":
		return fcago.CompressionLZ4, nil
	case "zstd":
		return fcago.CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none, lz4 or zstd)", s)
	}
}

func newConvertCmd(g *globalFlags) *cobra.Command {
	var (
		compression string
		name        string
	)

	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Rewrite a snapshot with another compression or name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := parseCompression(compression)
			if err != nil {
				return err
			}
			logger, err := g.logger()
			if err != nil {
				return err
			}

			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			c, err := fcago.ReadContext(in, fcago.WithName(name), fcago.WithLogger(logger))
			in.Close()
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			out, err := os.Create(args[1])
			if err != nil {
				return err
			}
			n, err := fcago.WriteSnapshot(out, c, ct)
			if cerr := out.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("write %s: %w", args[1], err)
			}
			logger.LogSnapshot("write", n, nil)

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", args[1], n)
			return nil
		},
	}
	cmd.Flags().StringVar(&compression, "compression", "zstd", "compression (none, lz4, zstd)")
	cmd.Flags().StringVar(&name, "name", "", "rename the context")
	return cmd
}
