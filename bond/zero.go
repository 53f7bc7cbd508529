package bond

import (
	"fmt"
	"math"

	"github.com/meenmo/fixedincome/calendar"
	"github.com/meenmo/fixedincome/daycount"
)

// ZeroCoupon is a bond paying its face value once, at maturity.
type ZeroCoupon struct {
	faceValue float64
	maturity  calendar.Date
}

// NewZeroCoupon validates and builds a zero-coupon bond.
func NewZeroCoupon(faceValue float64, maturity calendar.Date) (ZeroCoupon, error) {
	if math.IsNaN(faceValue) || math.IsInf(faceValue, 0) || faceValue <= 0 {
		return ZeroCoupon{}, fmt.Errorf("%w: face_value %v must be positive", ErrInvalidFaceValue, faceValue)
	}
	if maturity.IsZero() {
		return ZeroCoupon{}, fmt.Errorf("maturity: %w: date is unset", calendar.ErrInvalidDateFormat)
	}
	return ZeroCoupon{faceValue: faceValue, maturity: maturity}, nil
}

// ParseZeroCoupon is NewZeroCoupon with a YYYY-MM-DD maturity.
func ParseZeroCoupon(faceValue float64, maturity string) (ZeroCoupon, error) {
	m, err := calendar.Parse(maturity)
	if err != nil {
		return ZeroCoupon{}, fmt.Errorf("maturity: %w", err)
	}
	return NewZeroCoupon(faceValue, m)
}

func (b ZeroCoupon) FaceValue() float64      { return b.faceValue }
func (b ZeroCoupon) Maturity() calendar.Date { return b.maturity }

func (b ZeroCoupon) String() string {
	return fmt.Sprintf("ZeroCoupon(face=%.2f, maturity=%s)", b.faceValue, b.maturity)
}

// Cashflows returns the principal repayment at maturity.
func (b ZeroCoupon) Cashflows() []Cashflow {
	return []Cashflow{{Date: b.maturity, Principal: b.faceValue}}
}

// Price returns the present value at settlement:
//
//	t     = conv.YearFraction(settlement, maturity)
//	price = face / (1 + ytm)^t
func (b ZeroCoupon) Price(settlement calendar.Date, ytm float64, conv daycount.Convention) (float64, error) {
	t, err := b.period(settlement, ytm, conv)
	if err != nil {
		return 0, err
	}
	return b.faceValue / math.Pow(1.0+ytm, t), nil
}

// Quote prices b and reports the clean/dirty split. Zero-coupon bonds never accrue.
func (b ZeroCoupon) Quote(settlement calendar.Date, ytm float64, conv daycount.Convention) (PriceResult, error) {
	t, err := b.period(settlement, ytm, conv)
	if err != nil {
		return PriceResult{}, err
	}
	clean := b.faceValue / math.Pow(1.0+ytm, t)
	accrued := b.AccruedInterest(settlement, conv)
	return PriceResult{
		Clean:        clean,
		Dirty:        clean + accrued,
		Accrued:      accrued,
		YearFraction: t,
	}, nil
}

// AccruedInterest is always zero for a zero-coupon bond.
func (b ZeroCoupon) AccruedInterest(calendar.Date, daycount.Convention) float64 {
	return 0
}

// period validates a pricing request and returns the discounting period in years.
func (b ZeroCoupon) period(settlement calendar.Date, ytm float64, conv daycount.Convention) (float64, error) {
	if b.faceValue <= 0 || b.maturity.IsZero() {
		return 0, fmt.Errorf("%w: bond is not initialised, use NewZeroCoupon", ErrInvalidFaceValue)
	}
	if math.IsNaN(ytm) || math.IsInf(ytm, 0) {
		return 0, fmt.Errorf("%w: ytm %v is not finite", ErrInvalidYield, ytm)
	}
	if settlement.IsZero() {
		return 0, fmt.Errorf("settlement: %w: date is unset", calendar.ErrInvalidDateFormat)
	}
	if settlement.After(b.maturity) {
		return 0, fmt.Errorf("%w: settlement %s is after maturity %s", ErrSettlementAfterMaturity, settlement, b.maturity)
	}
	t, err := daycount.YearFraction(conv, settlement, b.maturity)
	if err != nil {
		return 0, err
	}
	// (1+ytm)^0 is 1 for any base, so only a non-zero period needs 1+ytm > 0.
	if t != 0 {
		if err := checkDiscountBase(ytm); err != nil {
			return 0, err
		}
	}
	return t, nil
}

func checkDiscountBase(ytm float64) error {
	if ytm <= -1 {
		return fmt.Errorf("%w: ytm %v leaves a non-positive discount base 1+ytm", ErrInvalidYield, ytm)
	}
	return nil
}

// PriceStrings parses its date and convention arguments and prices a zero-coupon bond.
func PriceStrings(faceValue float64, maturity, settlement string, ytm float64, conventionID string) (float64, error) {
	b, err := ParseZeroCoupon(faceValue, maturity)
	if err != nil {
		return 0, err
	}
	s, err := calendar.Parse(settlement)
	if err != nil {
		return 0, fmt.Errorf("settlement: %w", err)
	}
	conv, err := daycount.Lookup(conventionID)
	if err != nil {
		return 0, fmt.Errorf("convention: %w", err)
	}
	return b.Price(s, ytm, conv)
}
