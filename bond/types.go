package bond

import (
	"errors"

	"github.com/meenmo/fixedincome/calendar"
)

var (
	// ErrInvalidFaceValue is returned when a face value is not a positive finite number.
	ErrInvalidFaceValue = errors.New("invalid face value")
	// ErrInvalidYield is returned for a NaN or infinite yield, and for a yield at
	// or below -100% whenever it has to discount over a non-zero period.
	ErrInvalidYield = errors.New("invalid yield")
	// ErrSettlementAfterMaturity is returned when pricing past the maturity date.
	ErrSettlementAfterMaturity = errors.New("settlement after maturity")
	// ErrInvalidPrice is returned when solving for yield from a non-positive or non-finite price.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrZeroTime is returned when a yield is requested over a zero-length period.
	ErrZeroTime = errors.New("zero time to maturity")
)

// Cashflow is a single dated cash payment for a bond.
type Cashflow struct {
	Date      calendar.Date
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

// PriceResult breaks a price down into its clean and accrued parts.
//
// Dirty = Clean + Accrued. YearFraction is the discounting period used.
type PriceResult struct {
	Clean        float64
	Dirty        float64
	Accrued      float64
	YearFraction float64
}

// Risk holds yield sensitivities under discrete annual compounding.
type Risk struct {
	// MacaulayDuration is the PV-weighted time to the cashflow in years.
	MacaulayDuration float64
	// ModifiedDuration is -(dP/dy)/P.
	ModifiedDuration float64
	// Convexity is (d2P/dy2)/P.
	Convexity float64
	// DV01 is the price change for a one basis point fall in yield.
	DV01 float64
}
