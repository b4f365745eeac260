package service

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"finhealth/internal/forecast"
	"finhealth/internal/model"
	"finhealth/internal/narrative"
	"finhealth/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testWorkspace = uuid.MustParse("9a7b6c5d-4e3f-4a1b-8c2d-3e4f5a6b7c8d")
	testClock     = func() time.Time { return time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC) }
)

type mockLedgerSource struct {
	mock.Mock
}

func (m *mockLedgerSource) FetchLedger(ctx context.Context, workspaceID uuid.UUID, start, end time.Time) (model.Ledger, error) {
	args := m.Called(ctx, workspaceID, start, end)
	return args.Get(0).(model.Ledger), args.Error(1)
}

type mockNarrator struct {
	mock.Mock
}

func (m *mockNarrator) Narrate(ctx context.Context, input model.NarrativeInput) (model.Narrative, error) {
	args := m.Called(ctx, input)
	n, _ := args.Get(0).(model.Narrative)
	return n, args.Error(1)
}

func juneLedger() model.Ledger {
	return model.Ledger{
		Transactions: []model.Transaction{
			{ID: uuid.New(), WorkspaceID: testWorkspace, Type: model.TxTypeIncome, Category: "Sales", Amount: decimal.NewFromInt(3000), Date: time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)},
			{ID: uuid.New(), WorkspaceID: testWorkspace, Type: model.TxTypeExpense, Category: "Stock", Amount: decimal.NewFromInt(1000), Date: time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)},
		},
		Orders:   []model.Order{},
		Budgets:  []model.Budget{},
		Products: []model.Product{},
	}
}

func fullNarrative() model.Narrative {
	n := model.Narrative{}
	for _, key := range model.NarrativeSections {
		n[key] = "text for " + key
	}
	return n
}

func juneRequest() forecast.ReportRequest {
	return forecast.ReportRequest{WorkspaceID: testWorkspace.String(), Month: "2026-06"}
}

func newTestService(source LedgerSource, narrator Narrator, cache ReportCache) ForecastService {
	return NewForecastService(source, narrator, cache, ForecastOptions{
		Settings:         forecast.DefaultSettings(),
		NarrativeTimeout: time.Second,
		Clock:            testClock,
	}, zerolog.Nop())
}

func TestBuildReport_FetchesOnceOverTrendWindow(t *testing.T) {
	source := &mockLedgerSource{}
	source.On("FetchLedger", mock.Anything, testWorkspace,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	).Return(juneLedger(), nil).Once()

	report, err := newTestService(source, nil, nil).BuildReport(context.Background(), juneRequest())
	require.NoError(t, err)

	assert.Equal(t, "2026-06", report.Month)
	assert.Equal(t, testWorkspace.String(), report.WorkspaceID)
	assert.Equal(t, 3000.0, report.TotalIncome)
	assert.Equal(t, 1000.0, report.TotalExpense)
	assert.Equal(t, 10, report.DaysPassed)
	source.AssertExpectations(t)
}

func TestBuildReport_InputErrorsSkipStorage(t *testing.T) {
	tests := []struct {
		name string
		req  forecast.ReportRequest
		want error
	}{
		{name: "missing workspace", req: forecast.ReportRequest{Month: "2026-06"}, want: forecast.ErrInvalidWorkspace},
		{name: "bad workspace", req: forecast.ReportRequest{WorkspaceID: "abc"}, want: forecast.ErrInvalidWorkspace},
		{name: "bad month", req: forecast.ReportRequest{WorkspaceID: testWorkspace.String(), Month: "June"}, want: forecast.ErrInvalidPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &mockLedgerSource{}
			_, err := newTestService(source, nil, nil).BuildReport(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.want)
			assert.True(t, forecast.IsInputError(err))
			source.AssertNotCalled(t, "FetchLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestBuildReport_StorageFailure(t *testing.T) {
	boom := errors.New("connection refused")
	source := &mockLedgerSource{}
	source.On("FetchLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(model.Ledger{}, boom)

	_, err := newTestService(source, nil, nil).BuildReport(context.Background(), juneRequest())
	assert.ErrorIs(t, err, boom)
	assert.False(t, forecast.IsInputError(err))
}

func TestBuildReport_ForeignRecordFailsClosed(t *testing.T) {
	ledger := juneLedger()
	ledger.Transactions[1].WorkspaceID = uuid.New()

	source := &mockLedgerSource{}
	source.On("FetchLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(ledger, nil)

	report, err := newTestService(source, nil, nil).BuildReport(context.Background(), juneRequest())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, forecast.ErrForeignRecord)
	assert.True(t, forecast.IsIntegrityError(err))
}

func TestBudgetSummary(t *testing.T) {
	ledger := juneLedger()
	ledger.Budgets = append(ledger.Budgets, model.Budget{
		ID: uuid.New(), WorkspaceID: testWorkspace, Name: "Stock", Category: "stock",
		Amount: decimal.NewFromInt(1200), Month: "2026-06",
	})
	source := &mockLedgerSource{}
	source.On("FetchLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(ledger, nil)

	summary, err := newTestService(source, nil, nil).BudgetSummary(context.Background(), juneRequest())
	require.NoError(t, err)

	require.Len(t, summary.Budgets, 1)
	assert.Equal(t, 1200.0, summary.TotalBudget)
	assert.Equal(t, 1000.0, summary.TotalSpent)
	assert.Equal(t, 200.0, summary.TotalRemaining)
}

func TestStrategicReport_NoNarrator(t *testing.T) {
	source := &mockLedgerSource{}
	source.On("FetchLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(juneLedger(), nil)

	out, err := newTestService(source, nil, nil).StrategicReport(context.Background(), juneRequest())
	require.NoError(t, err)

	assert.Equal(t, model.NarrativeDisabled, out.NarrativeStatus)
	assert.Nil(t, out.Narrative)
	require.NotNil(t, out.Report)
	assert.Equal(t, "2026-06", out.Report.Month)
}

func TestStrategicReport_WithNarrative(t *testing.T) {
	source := &mockLedgerSource{}
	source.On("FetchLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(juneLedger(), nil)

	narrator := &mockNarrator{}
	narrator.On("Narrate", mock.Anything, mock.MatchedBy(func(in model.NarrativeInput) bool {
		return in.WorkspaceID == testWorkspace.String() && in.Month == "2026-06" && in.RawMetrics.DaysLeft == 20
	})).Return(fullNarrative(), nil).Once()

	out, err := newTestService(source, narrator, nil).StrategicReport(context.Background(), juneRequest())
	require.NoError(t, err)

	assert.Equal(t, model.NarrativeOK, out.NarrativeStatus)
	assert.Empty(t, out.NarrativeError)
	assert.Equal(t, "text for recommendations", out.Narrative[model.SectionRecommendations])
	narrator.AssertExpectations(t)
}

func TestStrategicReport_NarrativeFailureKeepsNumbers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{name: "unavailable", err: narrative.ErrNarrativeUnavailable, message: "narrative service unavailable"},
		{name: "malformed", err: narrative.ErrNarrativeMalformed, message: "narrative response was malformed"},
		{name: "deadline", err: context.DeadlineExceeded, message: "narrative generation timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &mockLedgerSource{}
			source.On("FetchLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(juneLedger(), nil)
			narrator := &mockNarrator{}
			narrator.On("Narrate", mock.Anything, mock.Anything).Return(nil, tt.err)

			out, err := newTestService(source, narrator, nil).StrategicReport(context.Background(), juneRequest())
			require.NoError(t, err)

			assert.Equal(t, model.NarrativeUnavailable, out.NarrativeStatus)
			assert.Equal(t, tt.message, out.NarrativeError)
			assert.Nil(t, out.Narrative)
			assert.Equal(t, 3000.0, out.Report.TotalIncome)
		})
	}
}

func TestStrategicReport_NarrativeTimeout(t *testing.T) {
	source := &mockLedgerSource{}
	source.On("FetchLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(juneLedger(), nil)

	narrator := &mockNarrator{}
	narrator.On("Narrate", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		<-args.Get(0).(context.Context).Done()
	}).Return(nil, narrative.ErrNarrativeUnavailable)

	svc := NewForecastService(source, narrator, nil, ForecastOptions{
		Settings:         forecast.DefaultSettings(),
		NarrativeTimeout: 20 * time.Millisecond,
		Clock:            testClock,
	}, zerolog.Nop())

	out, err := svc.StrategicReport(context.Background(), juneRequest())
	require.NoError(t, err)
	assert.Equal(t, model.NarrativeUnavailable, out.NarrativeStatus)
	assert.Equal(t, "narrative generation timed out", out.NarrativeError)
}

func TestForecastService_Cache(t *testing.T) {
	cache, err := store.Open(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	source := &mockLedgerSource{}
	source.On("FetchLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(juneLedger(), nil)
	narrator := &mockNarrator{}
	narrator.On("Narrate", mock.Anything, mock.Anything).Return(fullNarrative(), nil).Once()

	svc := newTestService(source, narrator, cache)
	ctx := context.Background()

	first, err := svc.StrategicReport(ctx, juneRequest())
	require.NoError(t, err)
	second, err := svc.StrategicReport(ctx, juneRequest())
	require.NoError(t, err)

	assert.Equal(t, first.Narrative, second.Narrative)
	assert.Equal(t, model.NarrativeOK, second.NarrativeStatus)
	narrator.AssertNumberOfCalls(t, "Narrate", 1)

	report, err := svc.BuildReport(ctx, juneRequest())
	require.NoError(t, err)
	again, err := svc.BuildReport(ctx, juneRequest())
	require.NoError(t, err)
	want, err := json.Marshal(report)
	require.NoError(t, err)
	got, err := json.Marshal(again)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestForecastService_CacheInvalidatedByData(t *testing.T) {
	cache, err := store.Open(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	changed := juneLedger()
	changed.Transactions[1].Amount = decimal.NewFromInt(1500)

	source := &mockLedgerSource{}
	source.On("FetchLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(juneLedger(), nil).Once()
	source.On("FetchLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(changed, nil).Once()

	svc := newTestService(source, nil, cache)

	before, err := svc.BuildReport(context.Background(), juneRequest())
	require.NoError(t, err)
	after, err := svc.BuildReport(context.Background(), juneRequest())
	require.NoError(t, err)

	assert.Equal(t, 1000.0, before.TotalExpense)
	assert.Equal(t, 1500.0, after.TotalExpense)
}

func TestForecastService_CacheInvalidatedBySettings(t *testing.T) {
	cache, err := store.Open(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	source := &mockLedgerSource{}
	source.On("FetchLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(juneLedger(), nil)
	narrator := &mockNarrator{}
	narrator.On("Narrate", mock.Anything, mock.Anything).Return(fullNarrative(), nil)

	retuned := forecast.DefaultSettings()
	retuned.Health.Margin = 30
	retuned.Rules.BudgetPace = 110

	defaults := newTestService(source, narrator, cache)
	tuned := NewForecastService(source, narrator, cache, ForecastOptions{
		Settings:         retuned,
		NarrativeTimeout: time.Second,
		Clock:            testClock,
	}, zerolog.Nop())
	ctx := context.Background()

	_, err = defaults.StrategicReport(ctx, juneRequest())
	require.NoError(t, err)
	_, err = tuned.StrategicReport(ctx, juneRequest())
	require.NoError(t, err)
	narrator.AssertNumberOfCalls(t, "Narrate", 2)

	_, err = defaults.StrategicReport(ctx, juneRequest())
	require.NoError(t, err)
	narrator.AssertNumberOfCalls(t, "Narrate", 2)

	fromDefaults, err := defaults.BuildReport(ctx, juneRequest())
	require.NoError(t, err)
	fromTuned, err := tuned.BuildReport(ctx, juneRequest())
	require.NoError(t, err)
	assert.NotEqual(t, fromDefaults.HealthScore, fromTuned.HealthScore)
}
