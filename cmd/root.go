// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/airport-sim/airport-sim/sim"
	"github.com/airport-sim/airport-sim/sim/snapshot"
	"github.com/airport-sim/airport-sim/sim/trace"
)

// buildVersion is overridden at build time via -ldflags.
var buildVersion = "dev"

var (
	rosterPath       string
	seedOverride     int64
	jitterOverride   bool
	intervalOverride int
	toInterval       int64
	logLevel         string
	traceLevel       string
)

var rootCmd = &cobra.Command{
	Use:   "airport-sim",
	Short: "Discrete-event simulator for airport departure passenger flow",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the departure-pipeline simulation over a roster file",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if rosterPath == "" {
			logrus.Fatalf("--roster is required")
		}

		roster, err := LoadRosterFile(rosterPath)
		if err != nil {
			logrus.Fatalf("loading roster: %v", err)
		}

		cfg := roster.ToSimConfig()
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seedOverride
		}
		if cmd.Flags().Changed("jitter") {
			cfg.JitterEnabled = jitterOverride
		}
		if cmd.Flags().Changed("interval-minutes") {
			cfg.IntervalMinutes = intervalOverride
		}

		cfg, warnings := sim.ValidateConfig(cfg)
		for _, w := range warnings {
			logrus.Warn(w)
		}

		logrus.Infof("starting simulation: %d flights, seed=%d, interval=%dmin",
			len(cfg.Flights), cfg.Seed, cfg.IntervalMinutes)

		if toInterval <= 0 {
			logrus.Fatalf("--to-interval must be >= 1")
		}

		store, err := snapshot.NewStore(cfg, toInterval)
		if err != nil {
			logrus.Fatalf("constructing simulator: %v", err)
		}

		tl, err := parseTraceLevel(traceLevel)
		if err != nil {
			logrus.Fatalf("invalid trace level: %s", traceLevel)
		}
		store.Current().SetTrace(trace.New(trace.Config{Level: tl}))

		if err := store.RunAll(); err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}

		for i := int64(0); i < toInterval; i++ {
			rec, ok := store.RecordAt(i)
			if !ok {
				continue
			}
			logrus.Infof("interval %d: ticket_queue=%v checkpoint_queue=%v hold_room=%v",
				rec.IntervalIndex, rec.TicketQueueLen, rec.CheckpointQueueLen, rec.HoldRoomLen)
		}

		logrus.Info("simulation complete")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(buildVersion)
	},
}

func parseTraceLevel(s string) (trace.Level, error) {
	switch s {
	case "", "off":
		return trace.LevelOff, nil
	case "summary":
		return trace.LevelSummary, nil
	default:
		return trace.LevelOff, fmt.Errorf("unknown trace level %q", s)
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&rosterPath, "roster", "", "Path to the roster YAML file (required)")
	runCmd.Flags().Int64Var(&seedOverride, "seed", 0, "Override the roster's RNG seed")
	runCmd.Flags().BoolVar(&jitterOverride, "jitter", false, "Override the roster's jitter_enabled setting")
	runCmd.Flags().IntVar(&intervalOverride, "interval-minutes", 0, "Override the roster's interval_minutes setting")
	runCmd.Flags().Int64Var(&toInterval, "to-interval", 1, "Number of intervals to compute")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "off", "Router decision trace level (off, summary)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}
