// Command rule-sweep runs every elementary rule from the same initial row and
// ranks them by how varied their integer sequences are, to help pick rules
// that make interesting melodies.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/pflag"

	"camusicgen/internal/app"
	"camusicgen/internal/logging"
)

func main() {
	cfg := app.NewConfig()
	cfg.Length = 64
	cfg.Workers = runtime.NumCPU()
	cfg.Bind(pflag.CommandLine)
	cfg.BindLogging(pflag.CommandLine)
	top := pflag.Int("top", 10, "number of rules to print")
	pflag.Parse()

	log, err := logging.New(os.Stderr, cfg.LogLevel, logging.Format(cfg.LogFormat), false)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}
	initial, err := cfg.InitialGeneration()
	if err != nil {
		log.Fatal().Err(err).Msg("bad initial row")
	}

	log.Info().
		Str("initial", initial.String()).
		Int("length", cfg.Length).
		Int("workers", cfg.Workers).
		Msg("sweeping 256 rules")

	start := time.Now()
	results, err := sweep(initial, cfg.Length, cfg.Workers)
	if err != nil {
		log.Fatal().Err(err).Msg("sweep failed")
	}
	elapsed := time.Since(start)

	fmt.Printf("Top %d rules (elapsed %s):\n", *top, elapsed.Round(time.Millisecond))
	for i := 0; i < len(results) && i < *top; i++ {
		fmt.Printf("%3d) %s\n", i+1, results[i])
	}
}
