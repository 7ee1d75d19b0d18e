// Command dotstrip runs color cycles on an APA102/DotStar LED strip,
// either on real hardware over SPI or on a terminal emulator.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-dotstrip/internal/config"
	"github.com/coreman2200/funtimes-dotstrip/internal/cycle"
	"github.com/coreman2200/funtimes-dotstrip/internal/patterns"
	"github.com/coreman2200/funtimes-dotstrip/internal/strip"
	"github.com/coreman2200/funtimes-dotstrip/internal/transport"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath   string
		debug     bool
		numLED    int
		bright    int
		order     string
		mode      string
		tickMs    int
		steps     int
		cycles    int
		durationS float64
		trName    string
		spiDev    string
		spiHz     int
		pattern   string
	)

	cmd := &cobra.Command{
		Use:          "dotstrip",
		Short:        "Drive color cycles on an APA102 LED strip",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			zerolog.TimeFieldFormat = time.RFC3339
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}

			cfg := config.Default()
			if c, err := config.Load(cfgPath); err != nil {
				if !os.IsNotExist(err) {
					return err
				}
				log.Debug().Str("path", cfgPath).Msg("no config file; using flags and defaults")
			} else {
				cfg = *c
			}

			// Explicit flags win over the config file.
			override := map[string]func(){
				"num-led":    func() { cfg.NumLED = numLED },
				"brightness": func() { cfg.Brightness = bright },
				"order":      func() { cfg.Order = order },
				"mode":       func() { cfg.BrightnessMode = mode },
				"tick-ms":    func() { cfg.TickMs = tickMs },
				"steps":      func() { cfg.StepsPerCycle = steps },
				"cycles":     func() { cfg.Cycles = cycles },
				"duration":   func() { cfg.DurationS = durationS },
				"transport":  func() { cfg.Transport = trName },
				"spi-dev":    func() { cfg.SPI.Dev = spiDev },
				"spi-hz":     func() { cfg.SPI.SpeedHz = spiHz },
				"pattern":    func() { cfg.Pattern = pattern },
			}
			for name, apply := range override {
				if cmd.Flags().Changed(name) {
					apply()
				}
			}

			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfgPath, "config", "c", "dotstrip.yaml", "path to YAML config")
	f.BoolVar(&debug, "debug", false, "log debug messages")
	f.IntVarP(&numLED, "num-led", "n", 80, "number of LEDs in the strip")
	f.IntVarP(&bright, "brightness", "b", 100, "global brightness ceiling (0-100)")
	f.StringVar(&order, "order", "rgb", "wire color order (rgb, rbg, grb, gbr, brg, bgr)")
	f.StringVar(&mode, "mode", "color", "brightness mode: color (flicker-free) or header")
	f.IntVar(&tickMs, "tick-ms", 30, "pause between steps in milliseconds")
	f.IntVar(&steps, "steps", 255, "steps per cycle")
	f.IntVar(&cycles, "cycles", cycle.Forever, "number of cycles (<=0 runs forever)")
	f.Float64Var(&durationS, "duration", 0, "wall-clock cutoff in seconds (0 disables)")
	f.StringVarP(&trName, "transport", "t", "term", "output: spi or term")
	f.StringVar(&spiDev, "spi-dev", "", "SPI port name (empty picks the first)")
	f.IntVar(&spiHz, "spi-hz", transport.DefaultSPISpeedHz, "SPI clock speed")
	f.StringVarP(&pattern, "pattern", "p", "rainbow", "pattern: solid, rainbow, strandtest, roundandround, larson, fire")

	return cmd
}

func run(parent context.Context, cfg config.Config) error {
	orderPos, err := strip.ParseOrder(cfg.Order)
	if err != nil {
		return err
	}
	bmode, err := cfg.Mode()
	if err != nil {
		return err
	}
	enc, err := strip.NewEncoder(orderPos, cfg.Brightness, bmode)
	if err != nil {
		return err
	}
	buf, err := strip.NewBuffer(cfg.NumLED, enc, cfg.Ranges())
	if err != nil {
		return err
	}

	var tr transport.Transport
	switch cfg.Transport {
	case "spi":
		sp, err := transport.NewSPI(cfg.SPI.Dev, cfg.SPI.SpeedHz)
		if err != nil {
			return err
		}
		if max := sp.MaxTxSize(); max > 0 && max < strip.DefaultChunkSize {
			if err := buf.SetChunkSize(max); err != nil {
				_ = sp.Close()
				return err
			}
		}
		tr = sp
	case "term":
		t, err := transport.NewTerm(cfg.NumLED, orderPos)
		if err != nil {
			return err
		}
		tr = t
	default:
		return fmt.Errorf("%w: unknown transport %q", strip.ErrConfiguration, cfg.Transport)
	}

	hooks, updaters, err := buildPattern(cfg.Pattern, cfg.NumLED)
	if err != nil {
		_ = tr.Close()
		return err
	}

	runner, err := cycle.New(buf, tr, cfg.Options(), hooks)
	if err != nil {
		_ = tr.Close()
		return err
	}
	runner.SetLogger(log.Logger)
	for _, u := range updaters {
		runner.AddUpdater(u)
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runner.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info().Msg("interrupted")
		}
		return err
	}
	return nil
}

func buildPattern(name string, numLED int) (cycle.Hooks, []cycle.UpdateFunc, error) {
	switch name {
	case "solid":
		return cycle.Hooks{}, []cycle.UpdateFunc{patterns.SolidFill(strip.White)}, nil
	case "rainbow":
		return cycle.Hooks{}, []cycle.UpdateFunc{patterns.Rainbow(0, numLED-1)}, nil
	case "strandtest":
		return cycle.Hooks{}, []cycle.UpdateFunc{patterns.StrandTest()}, nil
	case "roundandround":
		return cycle.Hooks{Init: patterns.RoundAndRoundInit}, []cycle.UpdateFunc{patterns.RoundAndRound()}, nil
	case "larson":
		return cycle.Hooks{}, []cycle.UpdateFunc{patterns.Larson(0, numLED-1, 0)}, nil
	case "fire":
		return cycle.Hooks{}, []cycle.UpdateFunc{patterns.Fire(0, numLED-1, nil)}, nil
	default:
		return cycle.Hooks{}, nil, fmt.Errorf("%w: unknown pattern %q", strip.ErrConfiguration, name)
	}
}
