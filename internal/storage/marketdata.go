package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/fundfigures/internal/domain/models"
	pq "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a lookup has no row for the requested
// asset/date or currency pair.
var ErrNotFound = errors.New("not found")

// PriceRow is one quote in the prices table.
type PriceRow struct {
	AssetID   string
	PriceDate time.Time
	Value     decimal.Decimal
	Currency  models.Currency
}

// PositionRow is one holding snapshot in the positions table.
type PositionRow struct {
	AssetID      string
	FohfID       string
	PositionDate time.Time
	Shares       decimal.Decimal
}

// RateRow is one exchange rate in the fx_rates table.
type RateRow struct {
	FromCurrency models.Currency
	ToCurrency   models.Currency
	RateDate     time.Time
	Value        decimal.Decimal
}

// MarketDataRepository defines the DB contract for the three lookups the
// figures factory depends on, plus the batch inserts used by seeding.
type MarketDataRepository interface {
	BestPrice(assetID string, date time.Time) (models.Price, error)
	AssetPosition(assetID, fohfID string, date time.Time) (models.Position, error)
	Rate(from, to models.Currency, date time.Time) (models.ExchangeRate, error)
	InsertPricesBatch(rows []PriceRow) error
	InsertPositionsBatch(rows []PositionRow) error
	InsertRatesBatch(rows []RateRow) error
}

type marketDataRepository struct {
	db *sql.DB
}

func NewMarketDataRepository(db *sql.DB) MarketDataRepository {
	return &marketDataRepository{db: db}
}

// BestPrice returns the most recent quote on or before the given date.
func (r *marketDataRepository) BestPrice(assetID string, date time.Time) (models.Price, error) {
	var p models.Price
	err := r.db.QueryRow(`
		SELECT price_value, currency
		FROM prices
		WHERE asset_id = $1 AND price_date <= $2
		ORDER BY price_date DESC
		LIMIT 1
	`, assetID, date).Scan(&p.Value, &p.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Price{}, fmt.Errorf("price for asset %s on %s: %w", assetID, date.Format("2006-01-02"), ErrNotFound)
	}
	if err != nil {
		return models.Price{}, err
	}
	return p, nil
}

// AssetPosition returns the investor's holding snapshot on or before the
// given date.
func (r *marketDataRepository) AssetPosition(assetID, fohfID string, date time.Time) (models.Position, error) {
	var pos models.Position
	err := r.db.QueryRow(`
		SELECT shares
		FROM positions
		WHERE asset_id = $1 AND fohf_id = $2 AND position_date <= $3
		ORDER BY position_date DESC
		LIMIT 1
	`, assetID, fohfID, date).Scan(&pos.Shares)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Position{}, fmt.Errorf("position for asset %s / fohf %s on %s: %w", assetID, fohfID, date.Format("2006-01-02"), ErrNotFound)
	}
	if err != nil {
		return models.Position{}, err
	}
	return pos, nil
}

// Rate returns the exchange rate valid on or before the given date.
func (r *marketDataRepository) Rate(from, to models.Currency, date time.Time) (models.ExchangeRate, error) {
	var rate models.ExchangeRate
	err := r.db.QueryRow(`
		SELECT rate_value
		FROM fx_rates
		WHERE from_currency = $1 AND to_currency = $2 AND rate_date <= $3
		ORDER BY rate_date DESC
		LIMIT 1
	`, string(from), string(to), date).Scan(&rate.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ExchangeRate{}, fmt.Errorf("rate %s->%s on %s: %w", from, to, date.Format("2006-01-02"), ErrNotFound)
	}
	if err != nil {
		return models.ExchangeRate{}, err
	}
	return rate, nil
}

// copyBatch runs a pq.CopyIn bulk load inside a single transaction.
// exec is called once per row against the prepared COPY statement.
func (r *marketDataRepository) copyBatch(stmt string, columns []string, n int, exec func(s *sql.Stmt, i int) error) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	s, err := tx.Prepare(pq.CopyIn(stmt, columns...))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for i := 0; i < n; i++ {
		if err := exec(s, i); err != nil {
			_ = s.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := s.Exec(); err != nil {
		_ = s.Close()
		_ = tx.Rollback()
		return err
	}
	if err := s.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// InsertPricesBatch bulk-loads price quotes in a single transaction.
func (r *marketDataRepository) InsertPricesBatch(rows []PriceRow) error {
	return r.copyBatch("prices",
		[]string{"asset_id", "price_date", "price_value", "currency"},
		len(rows),
		func(s *sql.Stmt, i int) error {
			rec := rows[i]
			_, err := s.Exec(rec.AssetID, rec.PriceDate, rec.Value, string(rec.Currency))
			return err
		})
}

// InsertPositionsBatch bulk-loads position snapshots in a single transaction.
func (r *marketDataRepository) InsertPositionsBatch(rows []PositionRow) error {
	return r.copyBatch("positions",
		[]string{"asset_id", "fohf_id", "position_date", "shares"},
		len(rows),
		func(s *sql.Stmt, i int) error {
			rec := rows[i]
			_, err := s.Exec(rec.AssetID, rec.FohfID, rec.PositionDate, rec.Shares)
			return err
		})
}

// InsertRatesBatch bulk-loads exchange rates in a single transaction.
func (r *marketDataRepository) InsertRatesBatch(rows []RateRow) error {
	return r.copyBatch("fx_rates",
		[]string{"from_currency", "to_currency", "rate_date", "rate_value"},
		len(rows),
		func(s *sql.Stmt, i int) error {
			rec := rows[i]
			_, err := s.Exec(string(rec.FromCurrency), string(rec.ToCurrency), rec.RateDate, rec.Value)
			return err
		})
}
