package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"gbmsim/internal/config"
	"gbmsim/internal/logger"
	"gbmsim/internal/metrics"
	"gbmsim/internal/report"
	"gbmsim/internal/sim"
)

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "gbmsim",
		Short: "Monte Carlo simulation of one-year GBM returns",
		Long: "gbmsim simulates price paths under Geometric Brownian Motion and reports\n" +
			"the mean, volatility and Value-at-Risk of the terminal returns.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return simulate(cmd, cfg)
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, toml or json)")
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(&cobra.Command{
		Use:   "analytic",
		Short: "Print the closed-form lognormal statistics for the configured model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			simCfg, err := cfg.SimConfig()
			if err != nil {
				return err
			}
			ref, err := sim.Lognormal(simCfg, cfg.VaRLevel)
			if err != nil {
				return err
			}
			return report.WriteReference(cmd.OutOrStdout(), ref)
		},
	})

	return root
}

func simulate(cmd *cobra.Command, cfg *config.Config) error {
	log := logger.NewWithWriter(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty}, cmd.ErrOrStderr())

	simCfg, err := cfg.SimConfig()
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
		log.Info().Uint64("seed", seed).Msg("No seed configured, using clock")
	}

	res, err := sim.NewEngine(seed, cfg.Workers, cfg.VaRLevel, log).Run(simCfg)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	if n := metrics.CountNonFinite(res.Returns); n > 0 {
		log.Warn().Int("paths", n).Msg("Non-finite returns, statistics may be NaN or Inf")
	}

	out := cmd.OutOrStdout()
	if cfg.Histogram.Enabled {
		if err := writeHistogram(out, res.Returns, cfg.Histogram); err != nil {
			return err
		}
	}
	if err := report.Write(out, res.Summary); err != nil {
		return err
	}
	if cfg.Verbose {
		if err := report.WriteDetails(out, res.Summary, seed); err != nil {
			return err
		}
	}

	if cfg.MetricsFile != "" {
		writeMetrics(log, cfg.MetricsFile, res)
	}
	return nil
}

func writeHistogram(out io.Writer, returns []float64, hc config.HistogramConfig) error {
	h, err := report.NewHistogram(returns, hc.Bins)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, "Monte Carlo Simulation of Portfolio Returns"); err != nil {
		return err
	}
	if err := h.Render(out, hc.Width); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out)
	return err
}

func writeMetrics(log zerolog.Logger, path string, res *sim.Result) {
	rec := metrics.NewRecorder()
	rec.Observe(res)
	if err := rec.WriteTextfile(path); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to write metrics")
		return
	}
	log.Debug().Str("path", path).Msg("Wrote metrics")
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
