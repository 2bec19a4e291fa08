package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/foodhub/foodhub/internal/dashboard"
	"github.com/foodhub/foodhub/internal/dataset"
	"github.com/foodhub/foodhub/internal/projectconfig"
	"github.com/foodhub/foodhub/internal/spinner"
	"github.com/spf13/cobra"
)

var version = "dev"

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	debug       bool
	configPath  string
	datasetPath string
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "foodhub",
		Short: "Food Hub - explore the Zomato restaurant dataset",
		Long: `Food Hub is a dashboard for exploring restaurant data.

Filter restaurants by name, type, cuisine, location and cost, compare their
ratings and find the most voted places. Run "foodhub serve" for the web
dashboard or "foodhub query" for the same panels in the terminal.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a .foodhub.yaml file (default: search upward from the working directory)")
	cmd.PersistentFlags().StringVar(&opts.datasetPath, "dataset", "", "Dataset file (.csv, .csv.gz, .xlsx) or Azure Blob URL")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if opts.debug {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newQueryCommand(opts))
	cmd.AddCommand(newExploreCommand(opts))
	cmd.AddCommand(newOptionsCommand(opts))
	cmd.AddCommand(newPreviewCommand(opts))
	cmd.AddCommand(newAboutCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// loadConfig resolves the configuration file and applies flag overrides.
func (o *globalOptions) loadConfig() (*projectconfig.ProjectConfig, error) {
	var (
		cfg *projectconfig.ProjectConfig
		err error
	)
	if o.configPath != "" {
		cfg, err = projectconfig.LoadFile(o.configPath)
	} else {
		cfg, err = projectconfig.Load(".")
	}
	if err != nil {
		return nil, err
	}
	if o.datasetPath != "" {
		cfg.Dataset.Path = o.datasetPath
	}
	if cfg.Source != "" {
		slog.Debug("configuration loaded", "file", cfg.Source, "dataset", cfg.Dataset.Path)
	}
	return cfg, nil
}

func datasetOptions(cfg *projectconfig.ProjectConfig) dataset.Options {
	return dataset.Options{
		Path:    cfg.Dataset.Path,
		Sheet:   cfg.Dataset.Sheet,
		Columns: cfg.Dataset.Columns,
		MaxRows: cfg.Dataset.MaxRows,
	}
}

func serviceOptions(cfg *projectconfig.ProjectConfig) []dashboard.Option {
	return []dashboard.Option{
		dashboard.WithPreviewRows(cfg.Dataset.PreviewRows),
		dashboard.WithDefaultTopN(cfg.Defaults.TopN),
	}
}

func newDatasetStore(cfg *projectconfig.ProjectConfig, logger *slog.Logger) (*dataset.Store, error) {
	src, err := dataset.NewSource(datasetOptions(cfg))
	if err != nil {
		return nil, err
	}
	return dataset.NewStore(src, logger), nil
}

// loadService reads the dataset, showing a spinner on progress when it is
// a terminal, and returns a dashboard service over it.
func loadService(ctx context.Context, progress io.Writer, cfg *projectconfig.ProjectConfig) (*dashboard.Service, error) {
	logger := slog.Default()
	store, err := newDatasetStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	var table *dataset.Table
	err = spinner.While(progress, "Loading restaurants", func() error {
		t, err := store.Table(ctx)
		table = t
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", cfg.Dataset.Path, err)
	}

	opts := append(serviceOptions(cfg), dashboard.WithLogger(logger))
	return dashboard.NewService(table, opts...), nil
}
