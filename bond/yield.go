package bond

import (
	"fmt"
	"math"

	"github.com/meenmo/fixedincome/calendar"
	"github.com/meenmo/fixedincome/daycount"
)

// YieldFromPrice inverts Price for a zero-coupon bond:
//
//	y = (face / price)^(1/t) - 1
//
// There is a single cashflow, so no iterative solver is needed.
func (b ZeroCoupon) YieldFromPrice(settlement calendar.Date, price float64, conv daycount.Convention) (float64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, fmt.Errorf("%w: price %v must be positive", ErrInvalidPrice, price)
	}
	// Any finite yield is valid here; only the settlement and convention are checked.
	t, err := b.period(settlement, 0, conv)
	if err != nil {
		return 0, err
	}
	if t == 0 {
		return 0, fmt.Errorf("%w: settlement %s equals maturity", ErrZeroTime, settlement)
	}
	return math.Pow(b.faceValue/price, 1.0/t) - 1.0, nil
}

// Sensitivities returns duration, convexity and DV01 at the given yield.
//
//	P      = F / (1+y)^t
//	dP/dy  = -t * F / (1+y)^(t+1)
//	d2P/dy2 = t(t+1) * F / (1+y)^(t+2)
func (b ZeroCoupon) Sensitivities(settlement calendar.Date, ytm float64, conv daycount.Convention) (Risk, error) {
	t, err := b.period(settlement, ytm, conv)
	if err != nil {
		return Risk{}, err
	}
	// Durations divide by 1+ytm even at maturity.
	if err := checkDiscountBase(ytm); err != nil {
		return Risk{}, err
	}
	price := b.faceValue / math.Pow(1.0+ytm, t)
	modified := t / (1.0 + ytm)
	return Risk{
		MacaulayDuration: t,
		ModifiedDuration: modified,
		Convexity:        t * (t + 1.0) / ((1.0 + ytm) * (1.0 + ytm)),
		DV01:             modified * price * 1e-4,
	}, nil
}
