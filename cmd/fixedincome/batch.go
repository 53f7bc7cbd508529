package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meenmo/fixedincome/batch"
)

func (a *app) batchCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Price zero-coupon bonds from JSON",
		Long: `Read a JSON object or array of pricing requests and write the results as JSON.

Each request has the fields id, face_value, maturity, settlement, trade_date,
ytm and convention. A trade_date settles pricing.settlement_lag business days
later. Otherwise settlement and convention fall back to the configured defaults.
The exit status is 1 when any request fails; failed items carry an error field.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readInput(a.stdin, strings.TrimSpace(inputPath))
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			reqs, isArray, err := parseRequests(raw)
			if err != nil {
				return fmt.Errorf("parse JSON: %w", err)
			}

			pricer := &batch.Pricer{
				Workers:       a.cfg.Batch.Workers,
				Convention:    a.cfg.Convention(),
				Settlement:    a.cfg.Settlement(),
				SettlementLag: a.cfg.Pricing.SettlementLag,
				Calendar:      a.cfg.Calendar(),
				Logger:        a.logger,
			}
			results, err := pricer.Price(cmd.Context(), reqs)
			if err != nil {
				return err
			}

			hadError := false
			for i := range results {
				if results[i].Error != "" {
					hadError = true
					continue
				}
				results[i].YearFraction = a.round(results[i].YearFraction)
				results[i].Price = a.round(results[i].Price)
			}

			var out []byte
			if isArray {
				out, err = json.Marshal(results)
			} else {
				out, err = json.Marshal(results[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, string(out))

			if hadError {
				return errItemsFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "JSON input path (reads stdin if omitted)")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(stdin)
}

func parseRequests(raw []byte) ([]batch.Request, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var reqs []batch.Request
		if err := json.Unmarshal(trimmed, &reqs); err != nil {
			return nil, true, err
		}
		if len(reqs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return reqs, true, nil
	}
	var req batch.Request
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return nil, false, err
	}
	return []batch.Request{req}, false, nil
}
