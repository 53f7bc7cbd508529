package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/meenmo/fixedincome/daycount"
)

func (a *app) conventionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conventions",
		Short: "List supported day count conventions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, c := range daycount.Conventions() {
				fmt.Fprintln(a.stdout, c)
			}
			return nil
		},
	}
}

func (a *app) dayCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daycount START END",
		Short: "Count days between two YYYY-MM-DD dates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := a.conventionFlag(cmd)
			n, err := daycount.DayCountStrings(args[0], args[1], id)
			if err != nil {
				return err
			}
			a.logger.WithField("convention", id).Debug("day count")
			fmt.Fprintln(a.stdout, n)
			return nil
		},
	}
	cmd.Flags().String("convention", "", "day count convention (default from config)")
	return cmd
}

func (a *app) yearFracCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "yearfrac START END",
		Short: "Year fraction between two YYYY-MM-DD dates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := a.conventionFlag(cmd)
			yf, err := daycount.YearFractionStrings(args[0], args[1], id)
			if err != nil {
				return err
			}
			a.logger.WithField("convention", id).Debug("year fraction")
			fmt.Fprintln(a.stdout, decimal.NewFromFloat(yf).StringFixed(a.cfg.Pricing.Decimals))
			return nil
		},
	}
	cmd.Flags().String("convention", "", "day count convention (default from config)")
	return cmd
}

// conventionFlag returns --convention, falling back to the configured default.
func (a *app) conventionFlag(cmd *cobra.Command) string {
	if id, _ := cmd.Flags().GetString("convention"); id != "" {
		return id
	}
	return a.cfg.Pricing.Convention
}

// round fixes v to the configured number of decimal places for display.
func (a *app) round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(a.cfg.Pricing.Decimals).InexactFloat64()
}
