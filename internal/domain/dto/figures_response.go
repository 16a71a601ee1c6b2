package dto

import (
	"github.com/guttosm/fundfigures/internal/domain/models"
	"github.com/shopspring/decimal"
)

// FiguresResponse is the JSON structure returned for a computed figures
// triple. Amount and price are denominated in the asset's native currency
// regardless of the currency the order was placed in.
type FiguresResponse struct {
	Amount        decimal.Decimal `json:"amount" example:"100"`
	PriceValue    decimal.Decimal `json:"price_value" example:"5"`
	PriceCurrency string          `json:"price_currency" example:"GBP"`
	Shares        decimal.Decimal `json:"shares" example:"20"`
}

// NewFiguresResponse maps the domain figures to the API contract.
func NewFiguresResponse(fig models.Figures) FiguresResponse {
	return FiguresResponse{
		Amount:        fig.Amount,
		PriceValue:    fig.Price.Value,
		PriceCurrency: string(fig.Price.Currency),
		Shares:        fig.Shares,
	}
}

// SubmitOrderResponse is returned by POST /api/v1/orders.
type SubmitOrderResponse struct {
	ID     string `json:"id" example:"0f8fad5b-d9cb-469f-a165-70867728950e"`
	Status string `json:"status" example:"PENDING"`
}

// OrderResponse is returned by GET /api/v1/orders/:id.
type OrderResponse struct {
	ID        string           `json:"id"`
	CompanyID string           `json:"company_id,omitempty"`
	FohfID    string           `json:"fohf_id"`
	AssetID   string           `json:"asset_id"`
	Currency  string           `json:"currency"`
	Type      string           `json:"type" example:"REDEMPTION"`
	Status    string           `json:"status" example:"PRICED"`
	TradeDate string           `json:"trade_date,omitempty" example:"2011-09-01"`
	ValueDate string           `json:"value_date,omitempty" example:"2011-09-05"`
	Figures   *FiguresResponse `json:"figures,omitempty"`
}

// NewOrderResponse maps a persisted order (and its figures, when priced)
// to the API contract.
func NewOrderResponse(order models.TradeOrder, fig *models.Figures) OrderResponse {
	resp := OrderResponse{
		ID:        order.ID,
		CompanyID: order.CompanyID,
		FohfID:    order.Fohf.ID,
		AssetID:   order.Asset.ID,
		Currency:  string(order.Currency),
		Type:      string(order.Type),
		Status:    string(order.Status),
	}
	if !order.TradeDate.IsZero() {
		resp.TradeDate = order.TradeDate.Format(dateLayout)
	}
	if !order.ValueDate.IsZero() {
		resp.ValueDate = order.ValueDate.Format(dateLayout)
	}
	if fig != nil {
		f := NewFiguresResponse(*fig)
		resp.Figures = &f
	}
	return resp
}
