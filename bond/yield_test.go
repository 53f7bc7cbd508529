package bond_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fixedincome/bond"
	"github.com/meenmo/fixedincome/calendar"
	"github.com/meenmo/fixedincome/daycount"
)

func TestYieldFromPrice_RoundTrip(t *testing.T) {
	t.Parallel()

	b := mustBond(t, 1000, "2030-12-31")
	settlement := calendar.MustParse("2025-06-19")

	for _, conv := range daycount.Conventions() {
		for _, ytm := range []float64{-0.01, 0, 0.015, 0.04, 0.12} {
			price, err := b.Price(settlement, ytm, conv)
			require.NoError(t, err)

			got, err := b.YieldFromPrice(settlement, price, conv)
			require.NoError(t, err)
			assert.InDelta(t, ytm, got, 1e-12, "%s ytm=%v", conv, ytm)
		}
	}
}

func TestYieldFromPrice_Reference(t *testing.T) {
	t.Parallel()

	b := mustBond(t, 1000, "2030-12-31")
	got, err := b.YieldFromPrice(calendar.MustParse("2025-06-19"), 800, daycount.Act365F)
	require.NoError(t, err)
	assert.InDelta(t, 0.041123629, got, 1e-9)
}

func TestYieldFromPrice_Errors(t *testing.T) {
	t.Parallel()

	b := mustBond(t, 1000, "2030-12-31")
	settlement := calendar.MustParse("2025-06-19")

	for _, p := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, err := b.YieldFromPrice(settlement, p, daycount.Act365F)
		assert.ErrorIs(t, err, bond.ErrInvalidPrice, "price=%v", p)
	}

	_, err := b.YieldFromPrice(b.Maturity(), 1000, daycount.Act365F)
	assert.ErrorIs(t, err, bond.ErrZeroTime)

	_, err = b.YieldFromPrice(calendar.MustParse("2031-01-01"), 1000, daycount.Act365F)
	assert.ErrorIs(t, err, bond.ErrSettlementAfterMaturity)
}

func TestSensitivities(t *testing.T) {
	t.Parallel()

	b := mustBond(t, 1000, "2030-12-31")
	settlement := calendar.MustParse("2025-06-19")

	risk, err := b.Sensitivities(settlement, 0.04, daycount.Act365F)
	require.NoError(t, err)

	tYears := 2021.0 / 365.0
	assert.InDelta(t, tYears, risk.MacaulayDuration, 1e-12)
	assert.InDelta(t, 5.324025290, risk.ModifiedDuration, 1e-9)
	assert.InDelta(t, 33.464500373, risk.Convexity, 1e-9)
	assert.InDelta(t, 0.428476239, risk.DV01, 1e-9)

	// DV01 agrees with a central finite difference of Price.
	up, err := b.Price(settlement, 0.04+1e-4, daycount.Act365F)
	require.NoError(t, err)
	down, err := b.Price(settlement, 0.04-1e-4, daycount.Act365F)
	require.NoError(t, err)
	assert.InDelta(t, (down-up)/2, risk.DV01, 1e-6)

	_, err = b.Sensitivities(settlement, math.Inf(1), daycount.Act365F)
	assert.ErrorIs(t, err, bond.ErrInvalidYield)
}
