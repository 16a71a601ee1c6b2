package dto

import (
	"fmt"
	"time"

	"github.com/guttosm/fundfigures/internal/domain/models"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// OrderRequest is the JSON body accepted by POST /api/v1/orders and
// POST /api/v1/figures/quote.
//
// Exactly one of amount, shares or percentage must be provided.
// whole_hedge_fund is shorthand for percentage=100 on a redemption.
type OrderRequest struct {
	CompanyID      string           `json:"company_id,omitempty" example:"CO-1"`
	FohfID         string           `json:"fohf_id" binding:"required" example:"FOHF-1"`
	AssetID        string           `json:"asset_id" binding:"required" example:"HF-GBP"`
	AssetCurrency  string           `json:"asset_currency" binding:"required" example:"GBP"`
	Currency       string           `json:"currency" binding:"required" example:"GBP"`
	Type           string           `json:"type" binding:"required,oneof=SUBSCRIPTION REDEMPTION" example:"SUBSCRIPTION"`
	Amount         *decimal.Decimal `json:"amount,omitempty" example:"100"`
	Shares         *decimal.Decimal `json:"shares,omitempty" example:"20"`
	Percentage     *decimal.Decimal `json:"percentage,omitempty" example:"50"`
	WholeHedgeFund bool             `json:"whole_hedge_fund,omitempty"`
	TradeDate      string           `json:"trade_date,omitempty" example:"2011-09-01"`
	ValueDate      string           `json:"value_date,omitempty" example:"2011-09-05"`
}

// ToOrder validates the request and maps it to the domain model. The
// nullable amount/shares/percentage fields collapse into the quantity
// union; anything other than exactly one populated field is rejected.
func (r OrderRequest) ToOrder() (models.TradeOrder, error) {
	var none models.TradeOrder

	quantity, err := r.quantity()
	if err != nil {
		return none, err
	}

	tradeDate, err := parseDate(r.TradeDate, "trade_date")
	if err != nil {
		return none, err
	}
	valueDate, err := parseDate(r.ValueDate, "value_date")
	if err != nil {
		return none, err
	}

	return models.TradeOrder{
		CompanyID: r.CompanyID,
		Fohf:      models.FundOfFund{ID: r.FohfID},
		Asset:     models.Asset{ID: r.AssetID, Currency: models.Currency(r.AssetCurrency)},
		Currency:  models.Currency(r.Currency),
		Type:      models.TradeOrderType(r.Type),
		Quantity:  quantity,
		TradeDate: tradeDate,
		ValueDate: valueDate,
	}, nil
}

func (r OrderRequest) quantity() (models.QuantitySpec, error) {
	set := 0
	var spec models.QuantitySpec
	if r.Amount != nil {
		set++
		spec = models.Amount(*r.Amount)
	}
	if r.Shares != nil {
		set++
		spec = models.Shares(*r.Shares)
	}
	if r.Percentage != nil {
		set++
		spec = models.Percentage(*r.Percentage)
	}
	if r.WholeHedgeFund {
		set++
		spec = models.Percentage(decimal.NewFromInt(100))
	}
	if set != 1 {
		return models.QuantitySpec{}, fmt.Errorf("exactly one of amount, shares, percentage or whole_hedge_fund must be set, got %d", set)
	}
	return spec, nil
}

func parseDate(s, field string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s, expected YYYY-MM-DD: %w", field, err)
	}
	return d, nil
}
