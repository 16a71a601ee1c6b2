package storage

import (
	"context"
	"time"

	"github.com/guttosm/fundfigures/internal/domain/models"
	"github.com/shopspring/decimal"
)

// Lookups adapts MarketDataRepository to the three collaborator interfaces
// consumed by the figures factory (figures.PriceFetcher,
// figures.PositionFetcher and figures.FXService).
type Lookups struct {
	repo MarketDataRepository
}

func NewLookups(repo MarketDataRepository) *Lookups {
	return &Lookups{repo: repo}
}

// FetchBestPrice quotes the asset from the prices table. The reference
// quantity is accepted for interface compatibility; stored quotes do not
// vary by order size.
func (l *Lookups) FetchBestPrice(_ context.Context, asset models.Asset, date time.Time, _ decimal.Decimal) (models.Price, error) {
	return l.repo.BestPrice(asset.ID, date)
}

// AssetPosition reads the investor's holding from the positions table.
func (l *Lookups) AssetPosition(_ context.Context, asset models.Asset, fohf models.FundOfFund, date time.Time) (models.Position, error) {
	return l.repo.AssetPosition(asset.ID, fohf.ID, date)
}

// ExchangeRate reads the conversion rate from the fx_rates table.
func (l *Lookups) ExchangeRate(_ context.Context, from, to models.Currency, date time.Time) (models.ExchangeRate, error) {
	return l.repo.Rate(from, to, date)
}
