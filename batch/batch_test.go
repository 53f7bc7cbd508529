package batch_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fixedincome/batch"
	"github.com/meenmo/fixedincome/bond"
	"github.com/meenmo/fixedincome/calendar"
	"github.com/meenmo/fixedincome/daycount"
)

func TestPricer_Price(t *testing.T) {
	t.Parallel()

	p := &batch.Pricer{
		Workers:    3,
		Convention: daycount.Act365F,
		Settlement: calendar.MustParse("2025-06-19"),
	}

	reqs := []batch.Request{
		{ID: "B1", FaceValue: 1000, Maturity: "2030-12-31", Yield: 0.04},
		{ID: "B2", FaceValue: 1000, Maturity: "2030-12-31", Yield: 0.04, Convention: "ACT/360"},
		{ID: "B3", FaceValue: 500, Maturity: "2027-06-19", Settlement: "2026-06-19", Yield: 0.03, Convention: "30/360US"},
	}

	results, err := p.Price(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, len(reqs))

	assert.Equal(t, "B1", results[0].ID)
	assert.Equal(t, "ACT/365F", results[0].Convention)
	assert.Equal(t, "2025-06-19", results[0].Settlement)
	assert.InDelta(t, 804.797528, results[0].Price, 1e-6)
	assert.Empty(t, results[0].Error)

	want, err := bond.PriceStrings(1000, "2030-12-31", "2025-06-19", 0.04, "ACT/360")
	require.NoError(t, err)
	assert.Equal(t, want, results[1].Price)
	assert.Equal(t, "ACT/360", results[1].Convention)

	assert.Equal(t, 1.0, results[2].YearFraction)
	assert.InDelta(t, 500/1.03, results[2].Price, 1e-9)
}

func TestPricer_PerItemErrors(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)
	logger.SetFormatter(&logrus.JSONFormatter{})

	p := &batch.Pricer{
		Workers:    2,
		Convention: daycount.Act365F,
		Settlement: calendar.MustParse("2025-06-19"),
		Logger:     logger,
	}

	reqs := []batch.Request{
		{ID: "ok", FaceValue: 1000, Maturity: "2030-12-31", Yield: 0.04},
		{ID: "face", FaceValue: 0, Maturity: "2030-12-31", Yield: 0.04},
		{ID: "date", FaceValue: 1000, Maturity: "2030-02-30", Yield: 0.04},
		{ID: "conv", FaceValue: 1000, Maturity: "2030-12-31", Yield: 0.04, Convention: "INVALID"},
		{ID: "late", FaceValue: 1000, Maturity: "2024-12-31", Yield: 0.04},
		{ID: "ok2", FaceValue: 2000, Maturity: "2030-12-31", Yield: 0.04},
	}

	results, err := p.Price(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, len(reqs))

	for i, r := range results {
		assert.Equal(t, reqs[i].ID, r.ID)
	}
	assert.Empty(t, results[0].Error)
	assert.Contains(t, results[1].Error, bond.ErrInvalidFaceValue.Error())
	assert.Contains(t, results[2].Error, calendar.ErrInvalidDateFormat.Error())
	assert.Contains(t, results[3].Error, daycount.ErrUnknownConvention.Error())
	assert.Contains(t, results[4].Error, bond.ErrSettlementAfterMaturity.Error())
	assert.Empty(t, results[5].Error)
	assert.InDelta(t, 2*results[0].Price, results[5].Price, 1e-9)

	assert.Contains(t, logs.String(), `"id":"conv"`)
	assert.Contains(t, logs.String(), "pricing request failed")
}

func TestPricer_NoSettlement(t *testing.T) {
	t.Parallel()

	p := &batch.Pricer{Convention: daycount.Act365F}
	results, err := p.Price(context.Background(), []batch.Request{
		{FaceValue: 1000, Maturity: "2030-12-31", Yield: 0.04},
	})
	require.NoError(t, err)
	assert.Contains(t, results[0].Error, "settlement")
}

func TestPricer_ManyRequestsOrdered(t *testing.T) {
	t.Parallel()

	p := &batch.Pricer{Workers: 8, Convention: daycount.ActActISDA, Settlement: calendar.MustParse("2025-01-01")}

	reqs := make([]batch.Request, 200)
	for i := range reqs {
		reqs[i] = batch.Request{
			ID:        fmt.Sprintf("BOND_%03d", i),
			FaceValue: 1000 + float64(i),
			Maturity:  fmt.Sprintf("%04d-06-30", 2026+i%30),
			Yield:     0.02 + float64(i%10)*0.005,
		}
	}

	results, err := p.Price(context.Background(), reqs)
	require.NoError(t, err)
	for i, r := range results {
		require.Equal(t, reqs[i].ID, r.ID)
		require.Empty(t, r.Error)
		want, err := bond.PriceStrings(reqs[i].FaceValue, reqs[i].Maturity, "2025-01-01", reqs[i].Yield, "ACT/ACT ISDA")
		require.NoError(t, err)
		require.Equal(t, want, r.Price)
	}
}

func TestPricer_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &batch.Pricer{Workers: 1, Convention: daycount.Act365F, Settlement: calendar.MustParse("2025-06-19")}
	_, err := p.Price(ctx, []batch.Request{{FaceValue: 1000, Maturity: "2030-12-31", Yield: 0.04}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPricer_Empty(t *testing.T) {
	t.Parallel()

	p := &batch.Pricer{}
	results, err := p.Price(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestPricer_TradeDateLag(t *testing.T) {
	t.Parallel()

	cal, err := calendar.NewCalendar([]string{"2025-06-20"})
	require.NoError(t, err)

	p := &batch.Pricer{
		Convention:    daycount.Act365F,
		Settlement:    calendar.MustParse("2020-01-01"),
		SettlementLag: 2,
		Calendar:      cal,
	}

	results, err := p.Price(context.Background(), []batch.Request{
		{ID: "lag", FaceValue: 1000, Maturity: "2030-12-31", TradeDate: "2025-06-19", Yield: 0.04},
		{ID: "explicit", FaceValue: 1000, Maturity: "2030-12-31", TradeDate: "2025-06-19", Settlement: "2025-06-19", Yield: 0.04},
		{ID: "bad", FaceValue: 1000, Maturity: "2030-12-31", TradeDate: "2025-06-31", Yield: 0.04},
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-24", results[0].Settlement)
	assert.Equal(t, "2025-06-19", results[1].Settlement)
	assert.InDelta(t, 804.797528, results[1].Price, 1e-6)
	assert.Contains(t, results[2].Error, "trade_date")
}
