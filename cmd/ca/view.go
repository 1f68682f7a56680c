//go:build ebiten

package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"camusicgen/internal/app"
	"camusicgen/internal/automaton"
	"camusicgen/internal/sims/elementary"
)

func newViewCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Watch the automaton scroll by in a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := e.cfg
			initial, err := cfg.InitialGeneration()
			if err != nil {
				return err
			}
			if len(initial) == 0 || len(initial) > automaton.MaxWidth {
				return fmt.Errorf("view needs a width between 1 and %d, got %d", automaton.MaxWidth, len(initial))
			}
			height := cfg.Length
			if height <= 0 {
				height = elementary.DefaultConfig().Height
			}
			sim := elementary.NewWithInitial(elementary.Config{Height: height, Rule: cfg.Rule, Init: cfg.Init}, initial)

			game := app.New(sim, cfg, e.log)
			w, h := game.Layout(0, 0)

			ebiten.SetWindowTitle(fmt.Sprintf("camusicgen — rule %d", cfg.Rule))
			ebiten.SetTPS(cfg.TPS)
			ebiten.SetWindowSize(w, h)

			if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
				return err
			}
			return nil
		},
	}
	e.cfg.BindView(cmd.Flags())
	return cmd
}
