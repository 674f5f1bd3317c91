// Copyright 2025 EURECOM
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Contributors:
//   Giulio CAROTA
//   Thomas DU
//   Adlen KSENTINI

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/simulator"
)

var (
	configFile string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "fapisim",
		Short:        "FAPI L2/L1 boundary simulator",
		Long:         `Multi-cell simulator of the SCF FAPI interface between an emulated L2 and an emulated L1`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config/fapisim.yaml", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the simulator and its OAM API",
		RunE:  runSimulator,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "validate-config",
		Short: "Check the configuration file and print it",
		RunE:  validateConfig,
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSimulator(cmd *cobra.Command, _ []string) error {
	cfg, err := simulator.InitConfig(configFile)
	if err != nil {
		return err
	}
	logger := newLogger(logLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	app, err := simulator.NewFapiSimulatorApp(cfg, nil, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx)
}

func validateConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := simulator.InitConfig(configFile)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), cfg.Dumps())
	return nil
}

func logLevel(name string) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(formatRFC3339Millis(a.Value.Time()))
			}
			if s, ok := a.Value.Any().(string); ok && s == "" {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func formatRFC3339Millis(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
