package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/fundfigures/internal/domain/models"
	"github.com/guttosm/fundfigures/internal/storage"
)

const dateLayout = "2006-01-02"

// Strict column ordering for each seed file. If a header doesn't match
// EXACTLY (order + count), loading must fail.
var (
	priceHeaders    = []string{"asset_id", "price_date", "value", "currency"}
	positionHeaders = []string{"asset_id", "fohf_id", "position_date", "shares"}
	rateHeaders     = []string{"from_currency", "to_currency", "rate_date", "value"}
)

// parseFile opens one CSV seed file, validates its header strictly, and
// feeds every record through row. Flushing to the database is the caller's
// concern; row is invoked once per data line.
//
// It fails on:
//   - header not matching expected order/length
//   - wrong column count on any line
//   - unrecoverable I/O errors
func parseFile(ctx context.Context, path string, headers []string, row func(rec []string) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // allow variable but we check explicitly

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(headers) {
		return 0, fmt.Errorf("invalid header length: expected %d, got %d", len(headers), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(h) != headers[i] {
			return 0, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, headers[i], h)
		}
	}

	total := 0
	lineNumber := 1 // header already read

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) != len(headers) {
			return 0, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(headers), len(rec))
		}

		if err := row(rec); err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		total++
	}

	return total, nil
}

// recordToPrice converts one validated prices.csv record into a PriceRow.
// All cells are required; market data with holes is worse than no data.
func recordToPrice(rec []string) (storage.PriceRow, error) {
	var p storage.PriceRow

	d, err := parseDate(rec[1], "price_date")
	if err != nil {
		return p, err
	}
	v, err := parseDecimal(rec[2], "value")
	if err != nil {
		return p, err
	}

	p.AssetID = strings.TrimSpace(rec[0])
	if p.AssetID == "" {
		return p, fmt.Errorf("empty asset_id")
	}
	p.PriceDate = d
	p.Value = v
	p.Currency = toCurrency(rec[3])
	if p.Currency == "" {
		return p, fmt.Errorf("invalid currency %q", rec[3])
	}
	return p, nil
}

// recordToPosition converts one validated positions.csv record into a PositionRow.
func recordToPosition(rec []string) (storage.PositionRow, error) {
	var p storage.PositionRow

	d, err := parseDate(rec[2], "position_date")
	if err != nil {
		return p, err
	}
	v, err := parseDecimal(rec[3], "shares")
	if err != nil {
		return p, err
	}

	p.AssetID = strings.TrimSpace(rec[0])
	p.FohfID = strings.TrimSpace(rec[1])
	if p.AssetID == "" || p.FohfID == "" {
		return p, fmt.Errorf("empty asset_id or fohf_id")
	}
	p.PositionDate = d
	p.Shares = v
	return p, nil
}

// recordToRate converts one validated fx_rates.csv record into a RateRow.
func recordToRate(rec []string) (storage.RateRow, error) {
	var r storage.RateRow

	d, err := parseDate(rec[2], "rate_date")
	if err != nil {
		return r, err
	}
	v, err := parseDecimal(rec[3], "value")
	if err != nil {
		return r, err
	}

	r.FromCurrency = toCurrency(rec[0])
	r.ToCurrency = toCurrency(rec[1])
	if r.FromCurrency == "" || r.ToCurrency == "" {
		return r, fmt.Errorf("invalid currency pair %q/%q", rec[0], rec[1])
	}
	r.RateDate = d
	r.Value = v
	return r, nil
}

func parseDate(s, field string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %v", field, err)
	}
	return d, nil
}

func parseDecimal(s, field string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s: %v", field, err)
	}
	if !v.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("non-positive %s: %s", field, v)
	}
	return v, nil
}

func toCurrency(s string) models.Currency {
	c := strings.ToUpper(strings.TrimSpace(s))
	if len(c) != 3 {
		return ""
	}
	return models.Currency(c)
}
