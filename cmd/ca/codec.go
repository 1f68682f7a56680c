package main

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/spf13/cobra"

	"camusicgen/internal/automaton"
)

func newEncodeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "encode CELLS",
		Short: "Print the integer encoding of a row of cells",
		Long: "Print the integer encoding of CELLS (\"00101\" or \"0,0,1,0,1\").\n" +
			"Rows wider than 64 cells are encoded with arbitrary precision.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := automaton.ParseGeneration(args[0])
			if err != nil {
				return err
			}
			if len(g) > automaton.MaxWidth {
				v, err := automaton.EncodeBig(g)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(e.out, v.String())
				return err
			}
			v, err := automaton.Encode(g)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(e.out, v)
			return err
		},
	}
}

func newDecodeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "decode VALUE",
		Short: "Print the row of --width cells encoded by VALUE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			width := e.cfg.Width
			if width <= automaton.MaxWidth {
				v, err := strconv.ParseUint(args[0], 10, 64)
				if err == nil {
					g, err := automaton.Decode(v, width)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(e.out, g)
					return err
				}
				if !errors.Is(err, strconv.ErrRange) {
					return fmt.Errorf("invalid value %q", args[0])
				}
			}
			v, ok := new(big.Int).SetString(args[0], 10)
			if !ok {
				return fmt.Errorf("invalid value %q", args[0])
			}
			g, err := automaton.DecodeBig(v, width)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(e.out, g)
			return err
		},
	}
}
