package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"finhealth/internal/forecast"
	"finhealth/internal/model"
	"finhealth/internal/narrative"
	"finhealth/internal/store"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultNarrativeTimeout bounds the narrative call when no timeout is configured
const DefaultNarrativeTimeout = 20 * time.Second

// LedgerSource returns every record of one workspace dated within [start, end] plus the
// budgets of the months it spans.
type LedgerSource interface {
	FetchLedger(ctx context.Context, workspaceID uuid.UUID, start, end time.Time) (model.Ledger, error)
}

// Narrator turns the packaged metrics into prose sections
type Narrator interface {
	Narrate(ctx context.Context, input model.NarrativeInput) (model.Narrative, error)
}

// ReportCache stores marshalled payloads keyed by workspace, period and data version
type ReportCache interface {
	Get(ctx context.Context, key store.Key) ([]byte, bool, error)
	Put(ctx context.Context, key store.Key, payload []byte) error
}

type ForecastService interface {
	BuildReport(ctx context.Context, req forecast.ReportRequest) (*model.ForecastReport, error)
	BudgetSummary(ctx context.Context, req forecast.ReportRequest) (*model.BudgetSummaryReport, error)
	StrategicReport(ctx context.Context, req forecast.ReportRequest) (*model.StrategicReport, error)
}

// ForecastOptions tunes a ForecastService. Zero values fall back to defaults.
type ForecastOptions struct {
	Settings         forecast.Settings
	NarrativeTimeout time.Duration
	Clock            func() time.Time
}

type forecastService struct {
	source   LedgerSource
	narrator Narrator
	cache    ReportCache
	settings forecast.Settings
	tuning   string
	timeout  time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewForecastService wires the engine to its collaborators. narrator and cache may be nil.
func NewForecastService(source LedgerSource, narrator Narrator, cache ReportCache, opts ForecastOptions, log zerolog.Logger) ForecastService {
	if opts.Settings.Location == nil {
		opts.Settings = forecast.DefaultSettings()
	}
	if opts.NarrativeTimeout <= 0 {
		opts.NarrativeTimeout = DefaultNarrativeTimeout
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	svc := &forecastService{
		source:   source,
		narrator: narrator,
		cache:    cache,
		settings: opts.Settings,
		timeout:  opts.NarrativeTimeout,
		now:      opts.Clock,
		log:      log.With().Str("component", "forecast").Logger(),
	}
	if cache != nil {
		tuning, err := store.SettingsFingerprint(opts.Settings)
		if err != nil {
			svc.log.Warn().Err(err).Msg("settings fingerprint failed, cache bypassed")
		}
		svc.tuning = tuning
	}
	return svc
}

// snapshot is one fetched ledger for a resolved period
type snapshot struct {
	workspaceID uuid.UUID
	period      forecast.Period
	ledger      model.Ledger
	version     string
}

// BuildReport computes the forecast report for the requested workspace and month
func (s *forecastService) BuildReport(ctx context.Context, req forecast.ReportRequest) (*model.ForecastReport, error) {
	snap, err := s.load(ctx, req)
	if err != nil {
		return nil, err
	}

	key := s.key(snap, store.KindReport)
	var report model.ForecastReport
	if s.fromCache(ctx, key, &report) {
		return &report, nil
	}

	res, err := s.build(ctx, snap)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, res.Report)
	return &res.Report, nil
}

// BudgetSummary returns the budget monitor output on its own
func (s *forecastService) BudgetSummary(ctx context.Context, req forecast.ReportRequest) (*model.BudgetSummaryReport, error) {
	snap, err := s.load(ctx, req)
	if err != nil {
		return nil, err
	}

	key := s.key(snap, store.KindBudgets)
	var summary model.BudgetSummaryReport
	if s.fromCache(ctx, key, &summary) {
		return &summary, nil
	}

	res, err := s.build(ctx, snap)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, res.Budgets)
	return &res.Budgets, nil
}

// StrategicReport computes the numeric report, then asks the narrator for prose.
// A narrator failure is reported on the result and never fails the call.
func (s *forecastService) StrategicReport(ctx context.Context, req forecast.ReportRequest) (*model.StrategicReport, error) {
	snap, err := s.load(ctx, req)
	if err != nil {
		return nil, err
	}
	res, err := s.build(ctx, snap)
	if err != nil {
		return nil, err
	}

	out := &model.StrategicReport{Report: &res.Report}
	if s.narrator == nil {
		out.NarrativeStatus = model.NarrativeDisabled
		return out, nil
	}

	key := s.key(snap, store.KindNarrative)
	var cached model.Narrative
	if s.fromCache(ctx, key, &cached) {
		out.Narrative = cached
		out.NarrativeStatus = model.NarrativeOK
		return out, nil
	}

	nctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.narrator.Narrate(nctx, res.Narrative)
	if err != nil {
		out.NarrativeStatus = model.NarrativeUnavailable
		out.NarrativeError = narrativeFailure(nctx, err)
		s.log.Warn().Err(err).
			Str("workspace_id", snap.workspaceID.String()).
			Str("month", snap.period.Month).
			Msg("narrative unavailable, returning numeric report only")
		s.capture(ctx, err, snap, "narrative")
		return out, nil
	}

	out.Narrative = text
	out.NarrativeStatus = model.NarrativeOK
	s.toCache(ctx, key, text)
	return out, nil
}

func (s *forecastService) load(ctx context.Context, req forecast.ReportRequest) (*snapshot, error) {
	workspaceID, err := forecast.ParseWorkspaceID(req.WorkspaceID)
	if err != nil {
		return nil, err
	}
	period, err := forecast.ResolvePeriod(req, s.now(), s.settings.Location)
	if err != nil {
		return nil, err
	}

	rng := period.FetchRange(s.settings)
	ledger, err := s.source.FetchLedger(ctx, workspaceID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger: %w", err)
	}

	snap := &snapshot{workspaceID: workspaceID, period: period, ledger: ledger}
	if s.cache != nil {
		if snap.version, err = store.Fingerprint(ledger); err != nil {
			s.log.Warn().Err(err).Msg("ledger fingerprint failed, cache bypassed")
		}
	}
	return snap, nil
}

func (s *forecastService) build(ctx context.Context, snap *snapshot) (forecast.Result, error) {
	res, err := forecast.Build(snap.workspaceID, snap.ledger, snap.period, s.settings)
	if err != nil {
		if forecast.IsIntegrityError(err) {
			s.log.Error().Err(err).
				Str("workspace_id", snap.workspaceID.String()).
				Str("month", snap.period.Month).
				Msg("ledger integrity check failed")
			s.capture(ctx, err, snap, "integrity")
		}
		return forecast.Result{}, fmt.Errorf("failed to build report: %w", err)
	}

	for _, w := range res.Budgets.Warnings {
		s.log.Warn().Str("workspace_id", snap.workspaceID.String()).Str("month", snap.period.Month).Msg(w)
	}
	return res, nil
}

func (s *forecastService) key(snap *snapshot, kind string) store.Key {
	return store.Key{
		WorkspaceID:     snap.workspaceID.String(),
		Month:           snap.period.Month,
		AsOf:            snap.period.WindowStart.Format(time.DateOnly) + ".." + snap.period.AsOf.Format(time.DateOnly),
		DataVersion:     snap.version,
		SettingsVersion: s.tuning,
		Kind:            kind,
	}
}

func (s *forecastService) fromCache(ctx context.Context, key store.Key, dst interface{}) bool {
	if s.cache == nil || key.DataVersion == "" || key.SettingsVersion == "" {
		return false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key.String()).Msg("report cache read failed")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn().Err(err).Str("key", key.String()).Msg("discarding undecodable cache entry")
		return false
	}
	s.log.Debug().Str("key", key.String()).Msg("report cache hit")
	return true
}

func (s *forecastService) toCache(ctx context.Context, key store.Key, v interface{}) {
	if s.cache == nil || key.DataVersion == "" || key.SettingsVersion == "" {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Warn().Err(err).Msg("encode cache entry")
		return
	}
	if err := s.cache.Put(ctx, key, raw); err != nil {
		s.log.Warn().Err(err).Str("key", key.String()).Msg("report cache write failed")
	}
}

func (s *forecastService) capture(ctx context.Context, err error, snap *snapshot, stage string) {
	configure := func(scope *sentry.Scope) {
		scope.SetTag("workspace_id", snap.workspaceID.String())
		scope.SetTag("month", snap.period.Month)
		scope.SetTag("stage", stage)
	}
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			configure(scope)
			hub.CaptureException(err)
		})
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		configure(scope)
		sentry.CaptureException(err)
	})
}

// narrativeFailure maps a narrator error to a message safe to show to clients
func narrativeFailure(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "narrative generation timed out"
	case errors.Is(err, narrative.ErrNarrativeMalformed):
		return "narrative response was malformed"
	default:
		return "narrative service unavailable"
	}
}
