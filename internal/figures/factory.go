package figures

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/fundfigures/internal/domain/models"
	"github.com/shopspring/decimal"
)

// ShareScale is the decimal scale used when deriving a share count from a
// monetary amount. Division rounds half away from zero at this scale;
// multiplications are exact.
const ShareScale = 8

var hundred = decimal.NewFromInt(100)

// PriceFetcher quotes the best available price for an asset as of a date.
// The reference quantity is a hint for the quote (the raw amount/shares
// requested); the returned price is always in the asset's native currency.
type PriceFetcher interface {
	FetchBestPrice(ctx context.Context, asset models.Asset, date time.Time, refQty decimal.Decimal) (models.Price, error)
}

// PositionFetcher reports the investor's current holding of an asset.
type PositionFetcher interface {
	AssetPosition(ctx context.Context, asset models.Asset, fohf models.FundOfFund, date time.Time) (models.Position, error)
}

// FXService resolves exchange rates: an amount in `from` multiplied by the
// returned rate is the equivalent amount in `to`.
type FXService interface {
	ExchangeRate(ctx context.Context, from, to models.Currency, date time.Time) (models.ExchangeRate, error)
}

// Factory turns a partially specified trade order into a fully consistent
// Figures triple in the asset's native currency. It is stateless; a single
// instance may be shared across goroutines provided the injected lookups
// are safe for concurrent reads.
type Factory struct {
	prices    PriceFetcher
	positions PositionFetcher
	fx        FXService
}

// NewFactory constructs a Factory over the three lookup collaborators.
func NewFactory(prices PriceFetcher, positions PositionFetcher, fx FXService) *Factory {
	return &Factory{prices: prices, positions: positions, fx: fx}
}

// BuildFrom derives (amount, price, shares) for the order as of the given
// date.
//
// Derivation:
//   - amount specified: converted to the asset's native currency when the
//     order currency differs, then shares = amount / price.
//   - shares specified: amount = shares * price.
//   - percentage specified (redemptions only): shares = held * pct / 100,
//     amount = shares * price.
//
// Redemptions are validated against the current position: derived shares
// may never exceed held shares. Failures are returned as one of
// *ValidationError, *InsufficientPositionError, *CurrencyResolutionError
// or *LookupFailureError; no partial result is ever returned.
func (f *Factory) BuildFrom(ctx context.Context, order models.TradeOrder, asOf time.Time) (models.Figures, error) {
	var none models.Figures

	qty := order.Quantity
	if !qty.IsSet() {
		return none, &ValidationError{Reason: "exactly one of amount, shares or percentage must be specified"}
	}
	if !qty.Value().IsPositive() {
		return none, &ValidationError{Reason: "quantity must be positive"}
	}

	price, err := f.prices.FetchBestPrice(ctx, order.Asset, asOf, qty.Value())
	if err != nil {
		return none, &LookupFailureError{What: "best price", Err: err}
	}
	if !price.Value.IsPositive() {
		// A non-positive quote cannot price an order and would divide by
		// zero on the amount path.
		return none, &LookupFailureError{
			What: "best price",
			Err:  fmt.Errorf("quote for asset %s is not positive: %s", order.Asset.ID, price.Value),
		}
	}
	native := order.Asset.Currency

	var shares, amount decimal.Decimal
	var held *models.Position // reused for redemption validation when already fetched

	switch qty.Kind() {
	case models.QuantityAmount:
		amount = qty.Value()
		if order.Currency != "" && order.Currency != native {
			rate, err := f.fx.ExchangeRate(ctx, order.Currency, native, asOf)
			if err != nil {
				return none, &CurrencyResolutionError{From: order.Currency, To: native, Err: err}
			}
			amount = amount.Mul(rate.Value)
		}
		shares = amount.DivRound(price.Value, ShareScale)

	case models.QuantityShares:
		shares = qty.Value()
		amount = shares.Mul(price.Value)

	case models.QuantityPercentage:
		if order.Type != models.Redemption {
			return none, &ValidationError{Reason: "percentage quantity is only valid on redemption orders"}
		}
		if qty.Value().GreaterThan(hundred) {
			return none, &ValidationError{Reason: "percentage must not exceed 100"}
		}
		pos, err := f.positions.AssetPosition(ctx, order.Asset, order.Fohf, f.positionDate(order, asOf))
		if err != nil {
			return none, &LookupFailureError{What: "position", Err: err}
		}
		held = &pos
		shares = pos.Shares.Mul(qty.Value()).DivRound(hundred, ShareScale)
		amount = shares.Mul(price.Value)
	}

	if order.Type == models.Redemption {
		if held == nil {
			pos, err := f.positions.AssetPosition(ctx, order.Asset, order.Fohf, f.positionDate(order, asOf))
			if err != nil {
				return none, &LookupFailureError{What: "position", Err: err}
			}
			held = &pos
		}
		if shares.GreaterThan(held.Shares) {
			return none, &InsufficientPositionError{Requested: shares, Held: held.Shares}
		}
	}

	return models.Figures{
		Amount: amount,
		Price:  models.Price{Value: price.Value, Currency: native},
		Shares: shares,
	}, nil
}

// positionDate is the date the holding is read at: the order's trade date,
// falling back to the as-of date when the order carries none.
func (f *Factory) positionDate(order models.TradeOrder, asOf time.Time) time.Time {
	if order.TradeDate.IsZero() {
		return asOf
	}
	return order.TradeDate
}
