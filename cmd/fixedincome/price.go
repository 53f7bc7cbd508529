package main

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/meenmo/fixedincome/bond"
	"github.com/meenmo/fixedincome/calendar"
	"github.com/meenmo/fixedincome/daycount"
)

type priceOutput struct {
	FaceValue        float64 `json:"face_value"`
	Maturity         string  `json:"maturity"`
	Settlement       string  `json:"settlement"`
	Convention       string  `json:"convention"`
	YTM              float64 `json:"ytm"`
	YearFraction     float64 `json:"year_fraction"`
	CleanPrice       float64 `json:"clean_price"`
	DirtyPrice       float64 `json:"dirty_price"`
	AccruedInterest  float64 `json:"accrued_interest"`
	MacaulayDuration float64 `json:"macaulay_duration"`
	ModifiedDuration float64 `json:"modified_duration"`
	Convexity        float64 `json:"convexity"`
	DV01             float64 `json:"dv01"`
}

func (a *app) priceCmd() *cobra.Command {
	var (
		face       float64
		maturity   string
		settlement string
		tradeDate  string
		ytm        float64
	)

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a zero-coupon bond",
		Example: "  fixedincome price --face 1000 --maturity 2030-12-31 --settlement 2025-06-19 --ytm 0.04\n" +
			"  fixedincome price --face 1000 --maturity 2030-12-31 --ytm 0.04 --convention \"ACT/ACT ISDA\"",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := bond.ParseZeroCoupon(face, maturity)
			if err != nil {
				return err
			}

			settle, err := a.settlementFor(settlement, tradeDate)
			if err != nil {
				return err
			}

			conv, err := daycount.Lookup(a.conventionFlag(cmd))
			if err != nil {
				return fmt.Errorf("convention: %w", err)
			}

			quote, err := b.Quote(settle, ytm, conv)
			if err != nil {
				return err
			}
			risk, err := b.Sensitivities(settle, ytm, conv)
			if err != nil {
				return err
			}

			a.logger.WithFields(logrus.Fields{
				"bond":       b.String(),
				"settlement": settle.String(),
				"convention": conv.String(),
			}).Debug("priced zero-coupon bond")

			out := priceOutput{
				FaceValue:        b.FaceValue(),
				Maturity:         b.Maturity().String(),
				Settlement:       settle.String(),
				Convention:       conv.String(),
				YTM:              ytm,
				YearFraction:     a.round(quote.YearFraction),
				CleanPrice:       a.round(quote.Clean),
				DirtyPrice:       a.round(quote.Dirty),
				AccruedInterest:  a.round(quote.Accrued),
				MacaulayDuration: a.round(risk.MacaulayDuration),
				ModifiedDuration: a.round(risk.ModifiedDuration),
				Convexity:        a.round(risk.Convexity),
				DV01:             a.round(risk.DV01),
			}
			raw, err := json.Marshal(out)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, string(raw))
			return nil
		},
	}

	cmd.Flags().Float64Var(&face, "face", 0, "face value (must be positive)")
	cmd.Flags().StringVar(&maturity, "maturity", "", "maturity date YYYY-MM-DD")
	cmd.Flags().StringVar(&settlement, "settlement", "", "settlement date YYYY-MM-DD (default from config)")
	cmd.Flags().StringVar(&tradeDate, "trade-date", "", "trade date YYYY-MM-DD; settles pricing.settlement_lag business days later")
	cmd.Flags().Float64Var(&ytm, "ytm", 0, "yield to maturity as a decimal, e.g. 0.04")
	cmd.Flags().String("convention", "", "day count convention (default from config)")
	_ = cmd.MarkFlagRequired("face")
	_ = cmd.MarkFlagRequired("maturity")
	_ = cmd.MarkFlagRequired("ytm")
	return cmd
}

// settlementFor picks --settlement, then --trade-date plus the configured lag, then the configured default.
func (a *app) settlementFor(settlement, tradeDate string) (calendar.Date, error) {
	switch {
	case settlement != "":
		d, err := calendar.Parse(settlement)
		if err != nil {
			return calendar.Date{}, fmt.Errorf("settlement: %w", err)
		}
		return d, nil
	case tradeDate != "":
		trade, err := calendar.Parse(tradeDate)
		if err != nil {
			return calendar.Date{}, fmt.Errorf("trade-date: %w", err)
		}
		return a.cfg.Calendar().AddBusinessDays(trade, a.cfg.Pricing.SettlementLag)
	case !a.cfg.Settlement().IsZero():
		return a.cfg.Settlement(), nil
	default:
		return calendar.Date{}, fmt.Errorf("settlement: %w: pass --settlement, --trade-date or set pricing.settlement", calendar.ErrInvalidDateFormat)
	}
}
