package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"finhealth/internal/config"
	"finhealth/internal/database"
	"finhealth/internal/forecast"
	"finhealth/internal/logger"
	"finhealth/internal/narrative"
	"finhealth/internal/repository"
	"finhealth/internal/service"
	"finhealth/internal/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	dsn        string
	ledgerPath string
	workspace  string
	month      string
	start      string
	end        string
	today      string
	configPath string
	cachePath  string
	compact    bool
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "forecastctl",
		Short:        "Workspace financial forecasts",
		Long:         "Compute month-end forecasts, budget summaries and strategic reports for one workspace.",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.dsn, "dsn", "", "PostgreSQL connection URL (defaults to DB_* environment)")
	flags.StringVar(&opts.ledgerPath, "ledger", "", "Read records from a JSON ledger file instead of PostgreSQL")
	flags.StringVarP(&opts.workspace, "workspace", "w", "", "Workspace ID (UUID), required for reports")
	flags.StringVarP(&opts.month, "month", "m", "", "Month (YYYY-MM), defaults to the current month")
	flags.StringVar(&opts.start, "start", "", "Window start (YYYY-MM-DD), requires --end")
	flags.StringVar(&opts.end, "end", "", "Window end (YYYY-MM-DD), requires --start")
	flags.StringVar(&opts.today, "today", "", "Evaluate as if today were this date (YYYY-MM-DD)")
	flags.StringVar(&opts.configPath, "config", "", "Engine tuning TOML file")
	flags.StringVar(&opts.cachePath, "cache", "", "SQLite report cache path (disabled when empty)")
	flags.BoolVar(&opts.compact, "compact", false, "Print single-line JSON")

	root.AddCommand(
		&cobra.Command{
			Use:   "report",
			Short: "Print the full forecast report",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.run(cmd, false, func(ctx context.Context, svc service.ForecastService, req forecast.ReportRequest) (interface{}, error) {
					return svc.BuildReport(ctx, req)
				})
			},
		},
		&cobra.Command{
			Use:   "budgets",
			Short: "Print the budget summary",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.run(cmd, false, func(ctx context.Context, svc service.ForecastService, req forecast.ReportRequest) (interface{}, error) {
					return svc.BudgetSummary(ctx, req)
				})
			},
		},
		&cobra.Command{
			Use:   "narrative",
			Short: "Print the strategic report with its generated narrative",
			Long:  "Print the strategic report. The narrative provider is read from NARRATIVE_PROVIDER and related variables.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.run(cmd, true, func(ctx context.Context, svc service.ForecastService, req forecast.ReportRequest) (interface{}, error) {
					return svc.StrategicReport(ctx, req)
				})
			},
		},
		newCacheCmd(opts),
	)
	return root
}

type reportFunc func(ctx context.Context, svc service.ForecastService, req forecast.ReportRequest) (interface{}, error)

func (o *rootOptions) run(cmd *cobra.Command, withNarrative bool, fn reportFunc) error {
	if o.workspace == "" {
		return errors.New("--workspace is required")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.NewWithWriter(cmd.ErrOrStderr()).Level(zerolog.WarnLevel)

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if o.configPath != "" {
		if cfg.Engine, err = config.LoadEngineSettings(o.configPath, cfg.Engine); err != nil {
			return err
		}
	}

	clock, err := o.clock(cfg.Engine.Location)
	if err != nil {
		return err
	}

	source, closeSource, err := o.ledgerSource(cfg, log)
	if err != nil {
		return err
	}
	defer closeSource()

	var narrator service.Narrator
	if withNarrative {
		n, err := narrative.New(ctx, cfg.Narrative.Options(), log)
		if err != nil {
			return err
		}
		narrator = n
	}

	var cache service.ReportCache
	if o.cachePath != "" {
		reportCache, err := store.Open(o.cachePath)
		if err != nil {
			return err
		}
		defer reportCache.Close()
		cache = reportCache
	}

	svc := service.NewForecastService(source, narrator, cache, service.ForecastOptions{
		Settings:         cfg.Engine,
		NarrativeTimeout: cfg.Narrative.Timeout,
		Clock:            clock,
	}, log)

	req, err := forecast.ParseRequest(o.workspace, o.requestOptions(), cfg.Engine.Location)
	if err != nil {
		return err
	}

	result, err := fn(ctx, svc, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if !o.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

// clock returns time.Now, or a fixed clock at midnight of --today in loc.
func (o *rootOptions) clock(loc *time.Location) (func() time.Time, error) {
	if o.today == "" {
		return time.Now, nil
	}
	today, err := time.ParseInLocation(time.DateOnly, o.today, loc)
	if err != nil {
		return nil, fmt.Errorf("--today %q must be YYYY-MM-DD", o.today)
	}
	return func() time.Time { return today }, nil
}

func (o *rootOptions) requestOptions() map[string]string {
	options := make(map[string]string)
	for key, value := range map[string]string{
		forecast.OptionMonth: o.month,
		forecast.OptionStart: o.start,
		forecast.OptionEnd:   o.end,
	} {
		if value != "" {
			options[key] = value
		}
	}
	return options
}

// ledgerSource opens the JSON ledger when --ledger is set, PostgreSQL otherwise
func (o *rootOptions) ledgerSource(cfg config.Config, log zerolog.Logger) (service.LedgerSource, func(), error) {
	if o.ledgerPath != "" {
		if o.dsn != "" {
			return nil, nil, errors.New("--ledger and --dsn are mutually exclusive")
		}
		ledger, err := repository.LoadMemoryLedger(o.ledgerPath)
		if err != nil {
			return nil, nil, err
		}
		return ledger, func() {}, nil
	}

	dsn := o.dsn
	if dsn == "" {
		dsn = cfg.Database.DSN()
	}
	db, err := database.NewConnection(dsn, database.Options{MaxOpenConns: 2, MaxIdleConns: 1}, log)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return repository.NewLedgerRepository(db, repository.NewTransactionManager(db)), closeDB, nil
}
