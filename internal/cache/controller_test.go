package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketCache/internal/collector"
	"MarketCache/internal/model"
)

func day(m time.Month, d int) time.Time { return time.Date(2023, m, d, 0, 0, 0, 0, time.UTC) }

type fixture struct {
	prices *collector.MockFetcher
	fx     *collector.MockFetcher
	macro  *collector.MockFetcher
	ctrl   *Controller
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{
		prices: &collector.MockFetcher{Price: 30},
		fx:     &collector.MockFetcher{Price: 5},
		macro:  &collector.MockFetcher{Price: 0.05},
	}
	adapter := collector.NewAdapter(f.prices, nil, f.fx, f.macro, nil, nil)
	f.ctrl = New(adapter, opts...)
	return f
}

func (f *fixture) ensure(t *testing.T, symbol string, from, to time.Time) model.SymbolRequest {
	t.Helper()
	req, err := f.ctrl.Ensure(context.Background(), symbol, from, to, model.Daily)
	require.NoError(t, err)
	return req
}

func closeOf(base string) model.Column { return model.RawColumn(base, model.FieldClose) }

func TestEnsure_IdempotentHit(t *testing.T) {
	f := newFixture()
	f.ensure(t, "PETR4", day(1, 1), day(1, 31))
	before := f.ctrl.Table().Series(closeOf("PETR4"))

	f.ensure(t, "PETR4", day(1, 1), day(1, 31))
	f.ensure(t, "PETR4", day(1, 10), day(1, 20))

	assert.Len(t, f.prices.Calls, 1)
	assert.Equal(t, before, f.ctrl.Table().Series(closeOf("PETR4")))
	assert.Len(t, f.ctrl.Table().Columns(), 5)
}

func TestEnsure_MonotonicWidening(t *testing.T) {
	f := newFixture()
	f.ensure(t, "PETR4", day(1, 10), day(1, 20))
	f.ensure(t, "PETR4", day(1, 1), day(1, 15))
	f.ensure(t, "PETR4", day(1, 5), day(1, 31))

	cov, ok := f.ctrl.Coverage("PETR4")
	require.True(t, ok)
	assert.Equal(t, model.DateRange{From: day(1, 1), To: day(1, 31)}, cov.Range)
	assert.Len(t, f.prices.Calls, 3)

	// every weekday of January 2023
	assert.Equal(t, 22, f.ctrl.Table().Count(closeOf("PETR4"), cov.Range))
}

func TestEnsure_RawThenTransform(t *testing.T) {
	f := newFixture()
	f.ensure(t, "PETR4", day(1, 1), day(1, 31))
	req := f.ensure(t, "RET_PETR4", day(1, 1), day(1, 31))

	assert.Len(t, f.prices.Calls, 1, "raw close already covered")
	require.Equal(t, "RET_PETR4_close", req.Output().Name())

	raw := f.ctrl.Table().Series(closeOf("PETR4"))
	ret := f.ctrl.Table().Series(req.Output())
	require.Len(t, ret, len(raw))
	for i := range raw {
		assert.Equal(t, raw[i].Time, ret[i].Time)
	}
	assert.Equal(t, 0.0, ret[0].Value)
}

func TestEnsure_TransformAlwaysRecomputed(t *testing.T) {
	f := newFixture()
	req := f.ensure(t, "RET_PETR4", day(1, 1), day(1, 31))
	want := f.ctrl.Table().Series(req.Output())

	f.ctrl.Table().Put(req.Output(), []model.Point{{Time: day(1, 2), Value: 99}})
	f.ensure(t, "RET_PETR4", day(1, 1), day(1, 31))

	assert.Equal(t, want, f.ctrl.Table().Series(req.Output()))
	assert.Len(t, f.prices.Calls, 1)
	assert.Len(t, f.ctrl.Table().Columns(), 6, "no duplicated columns")
}

func TestEnsure_VolatilityPaddingAndWindow(t *testing.T) {
	f := newFixture(WithSettings(model.Settings{VolatilityPaddingDays: 10}))
	req := f.ensure(t, "VOL5_PETR4", day(2, 1), day(2, 28))

	cov, _ := f.ctrl.Coverage("PETR4")
	assert.Equal(t, day(2, 1).AddDate(0, 0, -15), cov.Range.From)

	vol := f.ctrl.Table().Series(req.Output())
	require.NotEmpty(t, vol)
	assert.Equal(t, day(2, 1), vol[0].Time, "padding fills the window before the requested open")
	assert.Equal(t, day(2, 28), vol[len(vol)-1].Time)
}

func TestEnsure_RefetchKeepsSiblingTransforms(t *testing.T) {
	f := newFixture()
	f.ensure(t, "RET_PETR4", day(3, 1), day(3, 31))
	f.ensure(t, "VOL20_PETR4", day(3, 1), day(3, 31))

	assert.Len(t, f.prices.Calls, 2, "volatility padding widens the raw window")
	ret := f.ctrl.Table().Series(model.DerivedColumn(model.TransformReturn, 0, "PETR4"))
	require.NotEmpty(t, ret)
	assert.Equal(t, day(3, 1), ret[0].Time)
	assert.Equal(t, 0.0, ret[0].Value)
	assert.True(t, f.ctrl.Table().Has(model.DerivedColumn(model.TransformVolatility, 20, "PETR4")))
}

func TestInvalidate_DropsAllDerivedColumns(t *testing.T) {
	f := newFixture()
	f.ensure(t, "RET_PETR4", day(1, 1), day(1, 31))
	f.ensure(t, "CLRET_PETR4", day(1, 1), day(1, 31))
	f.ensure(t, "VOL10_PETR4", day(1, 1), day(1, 31))
	f.ensure(t, "VALE3", day(1, 1), day(1, 31))

	f.ctrl.Invalidate("PETR4")
	f.ctrl.Invalidate("NOTHING")

	for _, c := range f.ctrl.Table().Columns() {
		assert.Equal(t, "VALE3", c.Base)
	}
	_, ok := f.ctrl.Coverage("PETR4")
	assert.False(t, ok)
	_, ok = f.ctrl.Coverage("VALE3")
	assert.True(t, ok)
}

func TestEnsure_NoDataRollsBackCoverage(t *testing.T) {
	f := newFixture()
	f.prices.Empty = map[string]bool{"XXXX.SA": true, "XXXX": true}

	_, err := f.ctrl.Ensure(context.Background(), "RET_XXXX", day(1, 1), day(1, 31), model.Daily)
	assert.ErrorIs(t, err, model.ErrNoDataFound)
	_, ok := f.ctrl.Coverage("XXXX")
	assert.False(t, ok)
	assert.Empty(t, f.ctrl.Table().Columns())
}

func TestEnsure_FailedWideningDropsExistingBase(t *testing.T) {
	f := newFixture()
	f.ensure(t, "PETR4", day(1, 10), day(1, 20))
	f.prices.Empty = map[string]bool{"PETR4.SA": true, "PETR4": true}

	_, err := f.ctrl.Ensure(context.Background(), "PETR4", day(1, 1), day(1, 31), model.Daily)
	assert.ErrorIs(t, err, model.ErrNoDataFound)
	_, ok := f.ctrl.Coverage("PETR4")
	assert.False(t, ok)
	assert.False(t, f.ctrl.Table().Has(closeOf("PETR4")))
}

func TestEnsure_Currency(t *testing.T) {
	f := newFixture()
	f.ensure(t, "USD/BRL", day(1, 2), day(1, 6))

	assert.Empty(t, f.prices.Calls)
	assert.Equal(t, []string{"fx:USDBRL=X"}, f.fx.Calls)
	for _, field := range model.OHLCVFields {
		assert.Equal(t, 5, f.ctrl.Table().Count(model.RawColumn("USD/BRL", field), model.DateRange{From: day(1, 2), To: day(1, 6)}))
	}
}

func TestEnsure_MacroForwardFill(t *testing.T) {
	f := newFixture()
	f.macro.Series = map[int][]model.Point{
		11: {{Time: day(1, 4), Value: 13.65}, {Time: day(1, 11), Value: 13.75}},
	}
	f.ensure(t, "SELIC", day(1, 2), day(1, 13))

	assert.Empty(t, f.prices.Calls)
	got := f.ctrl.Table().Series(closeOf("SELIC"))
	require.Len(t, got, 8)
	assert.Equal(t, day(1, 4), got[0].Time)
	assert.Equal(t, 13.65, got[4].Value) // Jan 10
	assert.Equal(t, 13.75, got[5].Value) // Jan 11
	assert.Equal(t, day(1, 13), got[7].Time)
}

func TestEnsure_IntervalChangeUnionsCoverage(t *testing.T) {
	f := newFixture(WithIntervalTracking())
	ctx := context.Background()
	_, err := f.ctrl.Ensure(ctx, "PETR4", day(1, 1), day(1, 31), model.Daily)
	require.NoError(t, err)
	_, err = f.ctrl.Ensure(ctx, "PETR4", day(1, 25), day(1, 31), model.Interval5m)
	require.NoError(t, err)
	_, err = f.ctrl.Ensure(ctx, "PETR4", day(1, 26), day(1, 31), model.Interval5m)
	require.NoError(t, err)

	cov, ok := f.ctrl.Coverage("PETR4")
	require.True(t, ok)
	assert.Equal(t, model.Interval5m, cov.Interval)
	assert.Equal(t, model.DateRange{From: day(1, 1), To: day(1, 31)}, cov.Range)
	assert.Len(t, f.prices.Calls, 2)

	closes := f.ctrl.Table().Series(closeOf("PETR4"))
	require.NotEmpty(t, closes)
	assert.Equal(t, day(1, 2), closes[0].Time)
}

func TestEnsure_IntervalChangeDropsDerivedColumns(t *testing.T) {
	f := newFixture(WithIntervalTracking())
	ctx := context.Background()
	ret := model.DerivedColumn(model.TransformReturn, 0, "PETR4")

	_, err := f.ctrl.Ensure(ctx, "RET_PETR4", day(1, 1), day(1, 31), model.Daily)
	require.NoError(t, err)
	require.True(t, f.ctrl.Table().Has(ret))

	_, err = f.ctrl.Ensure(ctx, "PETR4", day(1, 25), day(1, 31), model.Interval60m)
	require.NoError(t, err)
	assert.False(t, f.ctrl.Table().Has(ret))

	// a later widening at the same interval must not bring it back
	_, err = f.ctrl.Ensure(ctx, "PETR4", day(1, 1), day(2, 10), model.Interval60m)
	require.NoError(t, err)
	assert.Len(t, f.prices.Calls, 3)
	assert.False(t, f.ctrl.Table().Has(ret))

	_, err = f.ctrl.Ensure(ctx, "RET_PETR4", day(1, 25), day(1, 31), model.Interval60m)
	require.NoError(t, err)
	assert.True(t, f.ctrl.Table().Has(ret))
	assert.Len(t, f.prices.Calls, 3)
}

func TestEnsure_IntervalIgnoredWithoutTracking(t *testing.T) {
	f := newFixture()
	f.ensure(t, "PETR4", day(1, 1), day(1, 31))
	_, err := f.ctrl.Ensure(context.Background(), "PETR4", day(1, 1), day(1, 31), model.Weekly)
	require.NoError(t, err)
	assert.Len(t, f.prices.Calls, 1)
}

func TestReset(t *testing.T) {
	f := newFixture()
	f.ensure(t, "RET_PETR4", day(1, 1), day(1, 31))
	f.ctrl.Reset()

	assert.Empty(t, f.ctrl.Table().Columns())
	_, ok := f.ctrl.Coverage("PETR4")
	assert.False(t, ok)

	f.ensure(t, "PETR4", day(1, 1), day(1, 31))
	assert.Len(t, f.prices.Calls, 2)
}
