package batch

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/meenmo/fixedincome/bond"
	"github.com/meenmo/fixedincome/calendar"
	"github.com/meenmo/fixedincome/daycount"
)

// Request is one zero-coupon pricing request as read from JSON.
//
// Settlement wins over TradeDate; a TradeDate settles SettlementLag business
// days later. With neither, and for an empty Convention, the Pricer defaults apply.
type Request struct {
	ID         string  `json:"id,omitempty"`
	FaceValue  float64 `json:"face_value"`
	Maturity   string  `json:"maturity"`
	Settlement string  `json:"settlement,omitempty"`
	TradeDate  string  `json:"trade_date,omitempty"`
	Yield      float64 `json:"ytm"`
	Convention string  `json:"convention,omitempty"`
}

// Result is the outcome of one Request. Error is set instead of the numeric fields on failure.
type Result struct {
	ID           string  `json:"id,omitempty"`
	Maturity     string  `json:"maturity,omitempty"`
	Settlement   string  `json:"settlement,omitempty"`
	Convention   string  `json:"convention,omitempty"`
	YearFraction float64 `json:"year_fraction"`
	Price        float64 `json:"price"`
	Error        string  `json:"error,omitempty"`
}

// Pricer prices independent requests concurrently.
type Pricer struct {
	// Workers bounds concurrency; values below 1 mean 1.
	Workers int
	// Convention is used when a request names none.
	Convention daycount.Convention
	// Settlement is used when a request has neither settlement nor trade date.
	Settlement calendar.Date
	// SettlementLag is the business-day lag applied to Request.TradeDate.
	SettlementLag int
	Calendar      calendar.Calendar
	Logger        logrus.FieldLogger
}

// Price prices every request. Results are index-aligned with reqs.
//
// A failing request only sets its own Result.Error. The returned error is
// non-nil only when ctx is cancelled before all requests were priced.
func (p *Pricer) Price(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, len(reqs))
	logger := p.logger()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.Workers, 1))

	for i := range reqs {
		if err := gctx.Err(); err != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := p.priceOne(reqs[i])
			if err != nil {
				res.Error = err.Error()
				logger.WithFields(logrus.Fields{
					"index": i,
					"id":    reqs[i].ID,
				}).WithError(err).Warn("pricing request failed")
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("batch pricing: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("batch pricing: %w", err)
	}
	logger.WithField("count", len(reqs)).Debug("batch priced")
	return results, nil
}

func (p *Pricer) priceOne(req Request) (Result, error) {
	out := Result{ID: req.ID}

	b, err := bond.ParseZeroCoupon(req.FaceValue, req.Maturity)
	if err != nil {
		return out, err
	}
	out.Maturity = b.Maturity().String()

	settlement, err := p.settlement(req)
	if err != nil {
		return out, err
	}
	out.Settlement = settlement.String()

	conv := p.Convention
	if req.Convention != "" {
		conv, err = daycount.Lookup(req.Convention)
		if err != nil {
			return out, fmt.Errorf("convention: %w", err)
		}
	}

	res, err := b.Quote(settlement, req.Yield, conv)
	if err != nil {
		return out, err
	}
	out.Convention = conv.String()
	out.YearFraction = res.YearFraction
	out.Price = res.Dirty
	return out, nil
}

func (p *Pricer) settlement(req Request) (calendar.Date, error) {
	switch {
	case req.Settlement != "":
		d, err := calendar.Parse(req.Settlement)
		if err != nil {
			return calendar.Date{}, fmt.Errorf("settlement: %w", err)
		}
		return d, nil
	case req.TradeDate != "":
		trade, err := calendar.Parse(req.TradeDate)
		if err != nil {
			return calendar.Date{}, fmt.Errorf("trade_date: %w", err)
		}
		return p.Calendar.AddBusinessDays(trade, p.SettlementLag)
	case !p.Settlement.IsZero():
		return p.Settlement, nil
	default:
		return calendar.Date{}, fmt.Errorf("settlement: %w: no settlement or trade date given and no default configured", calendar.ErrInvalidDateFormat)
	}
}

func (p *Pricer) logger() logrus.FieldLogger {
	if p.Logger != nil {
		return p.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
