package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"labor-dashboard/internal/app"
	"labor-dashboard/internal/config"
	"labor-dashboard/internal/export"
	"labor-dashboard/internal/logging"
	"labor-dashboard/internal/model"
	"labor-dashboard/internal/source"
	"labor-dashboard/internal/store"
)

type globals struct {
	configPath string
	logLevel   string
	cfg        config.Config
	logger     *zap.Logger
}

func newRootCommand() *cobra.Command {
	g := &globals{}
	cmd := &cobra.Command{
		Use:          "dashboard",
		Short:        "labor market and higher education dashboard server",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return err
			}
			g.cfg = cfg.ApplyEnv(os.LookupEnv)
			if g.logLevel != "" {
				g.cfg.Log.Level = g.logLevel
			}
			g.logger, err = logging.New(g.cfg.Log.Level, g.cfg.Log.Development)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if g.logger != nil {
				_ = g.logger.Sync()
			}
		},
	}
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "override log level")

	cmd.AddCommand(newServeCommand(g), newSeedCommand(g), newExportCommand(g))
	return cmd
}

func newServeCommand(g *globals) *cobra.Command {
	var addr, backend, dsn, fallbackDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the dashboard API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := g.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("backend") {
				cfg.Backend.Kind = backend
			}
			if cmd.Flags().Changed("dsn") {
				cfg.Backend.DSN = dsn
			}
			if cmd.Flags().Changed("fallback-dir") {
				cfg.Fallback.Dir = fallbackDir
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, g.logger)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address")
	cmd.Flags().StringVar(&backend, "backend", "", "postgres, sqlite or none")
	cmd.Flags().StringVar(&dsn, "dsn", "", "backend connection string")
	cmd.Flags().StringVar(&fallbackDir, "fallback-dir", "", "directory of .csv/.json files overriding the built-in fallback datasets")
	return cmd
}

func newSeedCommand(g *globals) *cobra.Command {
	var dsn, dir string
	cmd := &cobra.Command{
		Use:   "seed [dataset...]",
		Short: "copy fallback datasets into a SQLite backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if dsn == "" {
				dsn = g.cfg.Backend.DSN
			}
			if dsn == "" {
				return errors.New("--dsn is required")
			}
			catalog, err := source.NewCatalog()
			if err != nil {
				return err
			}
			if dir != "" {
				if _, err := catalog.LoadDir(ctx, dir); err != nil {
					return err
				}
			}
			if len(args) == 0 {
				args = catalog.Names()
			}

			db, err := store.OpenSQLite(ctx, dsn, g.cfg.Backend.MaxRows, g.cfg.Backend.Retry, g.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			for _, name := range args {
				records, ok := catalog.Records(name)
				if !ok {
					return fmt.Errorf("%w: %s", source.ErrUnknownDataset, name)
				}
				if err := db.Seed(ctx, name, records); err != nil {
					return err
				}
				g.logger.Info("dataset seeded", zap.String("dataset", name), zap.Int("records", len(records)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "SQLite database path")
	cmd.Flags().StringVar(&dir, "from", "", "directory of .csv/.json files to seed instead of the built-in datasets")
	return cmd
}

func newExportCommand(g *globals) *cobra.Command {
	var out, columns, sortBy string
	var desc bool
	cmd := &cobra.Command{
		Use:   "export <dataset>",
		Short: "write a dataset to a CSV or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			a, err := app.New(ctx, g.cfg, g.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			cfg := model.TableConfig{}
			for _, f := range splitColumns(columns) {
				cfg.Columns = append(cfg.Columns, model.FieldSpec{Field: f})
			}
			res, err := a.Service.Table(ctx, args[0], nil, cfg, model.TableQuery{SortBy: sortBy, Desc: desc})
			if err != nil {
				return err
			}
			if !res.IsReady() {
				return fmt.Errorf("nothing to export: %s", res.Message)
			}
			if out == "" {
				out = args[0] + ".csv"
			}
			n, err := export.ToFile(out, *res.Data, export.Info{Dataset: args[0], ExportedAt: time.Now().UTC()})
			if err != nil {
				return err
			}
			g.logger.Info("dataset exported", zap.String("dataset", args[0]), zap.String("path", out), zap.Int("rows", n))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, .csv or .json (default <dataset>.csv)")
	cmd.Flags().StringVar(&columns, "columns", "", "comma separated fields (default all)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort field")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

func splitColumns(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
