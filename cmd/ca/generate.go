package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"camusicgen/internal/automaton"
	"camusicgen/internal/render"
	"camusicgen/internal/writers"
)

func newGenerateCmd(e *env) *cobra.Command {
	var (
		pngPath      string
		pngScale     int
		integersOnly bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the automaton and print the encoded sequence",
		Long: "Run the automaton for --length generations starting from the initial row\n" +
			"and print the integer encoding of every generation. Cell i of a row\n" +
			"contributes 1<<i, so the leftmost cell is the least significant bit.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := e.cfg
			initial, err := cfg.InitialGeneration()
			if err != nil {
				return err
			}

			var seq automaton.Sequence
			if integersOnly {
				if cfg.Format != "ints" && cfg.Format != "lines" {
					return fmt.Errorf("--integers-only supports the ints and lines formats, not %q", cfg.Format)
				}
				if pngPath != "" {
					return fmt.Errorf("--integers-only cannot be combined with --png")
				}
				seq.Integers, err = automaton.GenerateIntegers(initial, cfg.Rule, cfg.Length)
			} else {
				seq, err = automaton.Generate(initial, cfg.Rule, cfg.Length)
			}
			if err != nil {
				return err
			}
			e.log.Debug().
				Int("width", len(initial)).
				Int("rule", cfg.Rule).
				Int("length", cfg.Length).
				Str("initial", initial.String()).
				Msg("generated")

			if err := writers.Write(cfg.Format, e.out, seq); err != nil {
				return err
			}
			if pngPath != "" {
				if err := writePNG(pngPath, seq.States, pngScale); err != nil {
					return err
				}
				e.log.Info().Str("path", pngPath).Msg("wrote diagram")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pngPath, "png", "", "also write the spacetime diagram to this PNG file")
	cmd.Flags().IntVar(&pngScale, "png-scale", 8, "pixels per cell in the PNG diagram")
	cmd.Flags().BoolVar(&integersOnly, "integers-only", false, "keep only the integers (constant memory in --length)")
	return cmd
}

func writePNG(path string, states []automaton.Generation, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WritePNG(f, states, scale); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
