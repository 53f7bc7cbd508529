package main

import (
	"errors"
	"fmt"

	"github.com/meenmo/fixedincome/bond"
	"github.com/meenmo/fixedincome/calendar"
	"github.com/meenmo/fixedincome/daycount"
)

func main() {
	start := calendar.MustParse("2025-01-01")
	end := calendar.MustParse("2025-07-01")

	fmt.Printf("Day counts %s -> %s\n", start, end)
	for _, conv := range daycount.Conventions() {
		fmt.Printf("  %-12s days=%4d  year_fraction=%.6f\n", conv, conv.DayCount(start, end), conv.YearFraction(start, end))
	}

	zcb, err := bond.ParseZeroCoupon(1000, "2030-12-31")
	if err != nil {
		panic(err)
	}
	settlement := calendar.MustParse("2025-06-19")

	fmt.Printf("\n%s priced on %s (ACT/365F)\n", zcb, settlement)
	for _, ytm := range []float64{0.02, 0.03, 0.04, 0.05, 0.06} {
		price, err := zcb.Price(settlement, ytm, daycount.Act365F)
		if err != nil {
			panic(err)
		}
		fmt.Printf("  ytm %5.2f%%  price %.2f\n", ytm*100, price)
	}

	fmt.Println("\nRejected inputs")
	if _, err := daycount.Lookup("INVALID"); errors.Is(err, daycount.ErrUnknownConvention) {
		fmt.Println(" ", err)
	}
	if _, err := daycount.YearFractionStrings("invalid-date", "2025-07-01", "ACT/365F"); errors.Is(err, calendar.ErrInvalidDateFormat) {
		fmt.Println(" ", err)
	}
	if _, err := bond.PriceStrings(1000, "2025-12-31", "2026-01-01", 0.04, "ACT/365F"); errors.Is(err, bond.ErrSettlementAfterMaturity) {
		fmt.Println(" ", err)
	}
}
