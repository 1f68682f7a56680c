//go:build !ebiten

package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newViewCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Watch the automaton scroll by in a window (requires -tags ebiten)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("the viewer requires the ebiten build tag; rebuild with `go build -tags ebiten ./cmd/ca`")
		},
	}
	e.cfg.BindView(cmd.Flags())
	return cmd
}
