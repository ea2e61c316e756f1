/*
	Tripcal
	Copyright (c) 2024 Tripcal Authors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package tpcmd implements the tripcal command line interface.
package tpcmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tripcal/tripcal/config"
	"github.com/tripcal/tripcal/convert"
	"github.com/tripcal/tripcal/places"
	"github.com/tripcal/tripcal/timeline"
)

// Main runs the CLI and exits the process with its status.
func Main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tripcal",
		Short:         "Convert Google Location History exports to iCalendar files",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(convertCmd())
	return root
}

func convertCmd() *cobra.Command {
	var (
		configPath  string
		outputDir   string
		lookup      bool
		concurrency int
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "convert FILE...",
		Short: "Convert semantic location history JSON files to .ics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.OutputDir = outputDir
			}
			if cmd.Flags().Changed("lookup") {
				cfg.LookupEnabled = lookup
			}
			if cmd.Flags().Changed("concurrency") {
				cfg.Concurrency = concurrency
			}
			if verbose {
				cfg.Verbose = true
			}
			cfg.Normalize()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, args)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "tripcal.yml", "path to the configuration file")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for .ics files (default: next to each input)")
	cmd.Flags().BoolVar(&lookup, "lookup", false, "look up place details (requires api_key in config)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "max concurrent place lookups per file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func run(ctx context.Context, cfg config.Config, inputs []string) error {
	if cfg.Verbose {
		timeline.SetLogLevel(zapcore.DebugLevel)
	}
	log := timeline.Log

	resolver, err := timeline.NewTimezoneResolver()
	if err != nil {
		return fmt.Errorf("loading timezone data: %w", err)
	}
	mapper := timeline.NewMapper(resolver, log.Named("mapper"))

	var svc places.Service
	if cfg.LookupEnabled {
		rl := places.RateLimit{
			RequestsPerHour: cfg.RequestsPerHour,
			BurstSize:       cfg.BurstSize,
		}
		client, err := places.NewGoogleClient(cfg.APIKey, rl, log.Named("places"))
		if err != nil {
			return fmt.Errorf("creating place lookup client: %w", err)
		}
		defer client.Close()
		svc = client
	}
	cache := places.NewCache(svc, cfg.Languages, log.Named("cache"))

	conv := convert.NewConverter(mapper, cache, convert.Options{
		LookupEnabled: cfg.LookupEnabled,
		Concurrency:   cfg.Concurrency,
	}, log.Named("convert"))

	var failed int
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := convertOne(ctx, conv, cfg, input); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			// a bad file aborts only itself
			log.Error("conversion failed", zap.String("input", input), zap.Error(err))
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(inputs))
	}
	return nil
}

func convertOne(ctx context.Context, conv *convert.Converter, cfg config.Config, input string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	cal, err := conv.ConvertFile(ctx, data)
	if err != nil {
		return err
	}

	out := outputPath(cfg.OutputDir, input)
	if err := os.WriteFile(out, []byte(cal), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	timeline.Log.Info("wrote calendar",
		zap.String("input", input),
		zap.String("output", out))
	return nil
}

// outputPath derives the .ics path for an input file, honoring the
// configured output directory when set.
func outputPath(outputDir, input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".ics"
	if outputDir == "" {
		return filepath.Join(filepath.Dir(input), base)
	}
	return filepath.Join(outputDir, base)
}
