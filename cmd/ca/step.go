package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"camusicgen/internal/automaton"
)

func newStepCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "step",
		Short: "Print the generation after the initial row and its encoding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := e.cfg.InitialGeneration()
			if err != nil {
				return err
			}
			if err := cur.Validate(); err != nil {
				return err
			}
			next := automaton.Step(cur, e.cfg.Rule)
			v, err := automaton.Encode(next)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(e.out, "%s %d\n", next, v)
			return err
		},
	}
}
