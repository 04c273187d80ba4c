package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tony-oliver/savefmt"
)

var (
	scanSpec string
	scanKind string
)

func init() {
	scanCmd.Flags().StringVar(&scanSpec, "spec", "", "format directives driving the parse, e.g. hex or keepspace")
	scanCmd.Flags().StringVar(&scanKind, "kind", "int", "token kind to read (int|uint|float|word)")
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Parse stdin tokens under a formatting spec",
	Long: `scan reads tokens from stdin using the given formatting spec and echoes
each one back in default formatting, one per line. Hex input becomes
decimal output unless you say otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch scanKind {
		case "int", "uint", "float", "word":
			// supported
		default:
			return fmt.Errorf("unsupported kind %q (must be int, uint, float or word)", scanKind)
		}
		f, err := savefmt.ParseSpec(scanSpec)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		sc := savefmt.NewScanner(cmd.InOrStdin())
		sc.SetFormat(f)
		out := savefmt.NewStream(cmd.OutOrStdout())
		for {
			err := scanOne(sc, out)
			if errors.Is(err, io.EOF) {
				return out.Err()
			}
			if err != nil {
				return err
			}
		}
	},
}

func scanOne(sc *savefmt.Scanner, out *savefmt.Stream) error {
	switch scanKind {
	case "int":
		v, err := sc.Int()
		if err != nil {
			return err
		}
		out.Int(v).Newline()
	case "uint":
		v, err := sc.Uint()
		if err != nil {
			return err
		}
		out.Uint(v).Newline()
	case "float":
		v, err := sc.Float()
		if err != nil {
			return err
		}
		out.Float(v).Newline()
	case "word":
		w, err := sc.Word()
		if err != nil {
			return err
		}
		out.Text(w).Newline()
	}
	return nil
}
