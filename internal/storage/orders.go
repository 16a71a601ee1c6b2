package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/fundfigures/internal/domain/models"
	"github.com/shopspring/decimal"
)

// OrdersRepository defines the DB contract for trade orders and their
// computed figures.
type OrdersRepository interface {
	Insert(order models.TradeOrder) (string, error)
	Get(id string) (*models.TradeOrder, *models.Figures, error)
	ListPending(limit int) ([]models.TradeOrder, error)
	SaveFigures(orderID string, fig models.Figures) error
	MarkFailed(orderID string, reason string) error
}

type ordersRepository struct {
	db *sql.DB
}

func NewOrdersRepository(db *sql.DB) OrdersRepository {
	return &ordersRepository{db: db}
}

// quantityColumns splits the tagged quantity union into the three nullable
// columns of the trade_orders table.
func quantityColumns(q models.QuantitySpec) (amount, shares, percentage interface{}) {
	switch q.Kind() {
	case models.QuantityAmount:
		return q.Value(), nil, nil
	case models.QuantityShares:
		return nil, q.Value(), nil
	case models.QuantityPercentage:
		return nil, nil, q.Value()
	}
	return nil, nil, nil
}

// quantityFromColumns rebuilds the union from the nullable columns; it
// fails when the row does not carry exactly one of them.
func quantityFromColumns(amount, shares, percentage decimal.NullDecimal) (models.QuantitySpec, error) {
	set := 0
	var spec models.QuantitySpec
	if amount.Valid {
		set++
		spec = models.Amount(amount.Decimal)
	}
	if shares.Valid {
		set++
		spec = models.Shares(shares.Decimal)
	}
	if percentage.Valid {
		set++
		spec = models.Percentage(percentage.Decimal)
	}
	if set != 1 {
		return models.QuantitySpec{}, fmt.Errorf("order row has %d of amount/shares/percentage set, want exactly 1", set)
	}
	return spec, nil
}

// toNullDate maps zero-value dates to NULL.
func toNullDate(d time.Time) interface{} {
	if d.IsZero() {
		return nil
	}
	return d
}

// Insert persists a new order with status PENDING and returns its ID.
func (r *ordersRepository) Insert(order models.TradeOrder) (string, error) {
	id := order.ID
	if id == "" {
		id = uuid.NewString()
	}
	amount, shares, percentage := quantityColumns(order.Quantity)

	_, err := r.db.Exec(`
		INSERT INTO trade_orders (
			id, company_id, fohf_id, asset_id, asset_currency, currency,
			type, status, amount, shares, percentage, trade_date, value_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		id,
		order.CompanyID,
		order.Fohf.ID,
		order.Asset.ID,
		string(order.Asset.Currency),
		string(order.Currency),
		string(order.Type),
		string(models.StatusPending),
		amount,
		shares,
		percentage,
		toNullDate(order.TradeDate),
		toNullDate(order.ValueDate),
	)
	if err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}
	return id, nil
}

// Get loads an order and, if it has been priced, its figures.
func (r *ordersRepository) Get(id string) (*models.TradeOrder, *models.Figures, error) {
	var (
		order                      models.TradeOrder
		amount, shares, percentage decimal.NullDecimal
		tradeDate, valueDate       sql.NullTime
		figAmount, figPrice        decimal.NullDecimal
		figShares                  decimal.NullDecimal
		figCurrency                sql.NullString
	)

	err := r.db.QueryRow(`
		SELECT o.id, o.company_id, o.fohf_id, o.asset_id, o.asset_currency, o.currency,
			   o.type, o.status, o.amount, o.shares, o.percentage, o.trade_date, o.value_date,
			   f.amount, f.price_value, f.price_currency, f.shares
		FROM trade_orders o
		LEFT JOIN order_figures f ON f.order_id = o.id
		WHERE o.id = $1
	`, id).Scan(
		&order.ID, &order.CompanyID, &order.Fohf.ID, &order.Asset.ID, &order.Asset.Currency, &order.Currency,
		&order.Type, &order.Status, &amount, &shares, &percentage, &tradeDate, &valueDate,
		&figAmount, &figPrice, &figCurrency, &figShares,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, nil, err
	}

	order.Quantity, err = quantityFromColumns(amount, shares, percentage)
	if err != nil {
		return nil, nil, fmt.Errorf("order %s: %w", id, err)
	}
	if tradeDate.Valid {
		order.TradeDate = tradeDate.Time
	}
	if valueDate.Valid {
		order.ValueDate = valueDate.Time
	}

	var fig *models.Figures
	if figAmount.Valid && figPrice.Valid && figShares.Valid {
		fig = &models.Figures{
			Amount: figAmount.Decimal,
			Price: models.Price{
				Value:    figPrice.Decimal,
				Currency: models.Currency(figCurrency.String),
			},
			Shares: figShares.Decimal,
		}
	}

	return &order, fig, nil
}

// ListPending returns up to limit orders still waiting to be priced,
// oldest first.
func (r *ordersRepository) ListPending(limit int) ([]models.TradeOrder, error) {
	rows, err := r.db.Query(`
		SELECT id, company_id, fohf_id, asset_id, asset_currency, currency,
			   type, status, amount, shares, percentage, trade_date, value_date
		FROM trade_orders
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2
	`, string(models.StatusPending), limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var orders []models.TradeOrder
	for rows.Next() {
		var (
			order                      models.TradeOrder
			amount, shares, percentage decimal.NullDecimal
			tradeDate, valueDate       sql.NullTime
		)
		if err := rows.Scan(
			&order.ID, &order.CompanyID, &order.Fohf.ID, &order.Asset.ID, &order.Asset.Currency, &order.Currency,
			&order.Type, &order.Status, &amount, &shares, &percentage, &tradeDate, &valueDate,
		); err != nil {
			return nil, err
		}
		order.Quantity, err = quantityFromColumns(amount, shares, percentage)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", order.ID, err)
		}
		if tradeDate.Valid {
			order.TradeDate = tradeDate.Time
		}
		if valueDate.Valid {
			order.ValueDate = valueDate.Time
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// SaveFigures upserts the computed figures and flips the order to PRICED
// in a single transaction.
func (r *ordersRepository) SaveFigures(orderID string, fig models.Figures) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO order_figures (order_id, amount, price_value, price_currency, shares)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id)
		DO UPDATE SET amount = EXCLUDED.amount,
					  price_value = EXCLUDED.price_value,
					  price_currency = EXCLUDED.price_currency,
					  shares = EXCLUDED.shares,
					  priced_at = NOW()
	`, orderID, fig.Amount, fig.Price.Value, string(fig.Price.Currency), fig.Shares); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.Exec(`
		UPDATE trade_orders SET status = $1, failure_reason = NULL WHERE id = $2
	`, string(models.StatusPriced), orderID); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// MarkFailed records a business failure against the order.
func (r *ordersRepository) MarkFailed(orderID string, reason string) error {
	_, err := r.db.Exec(`
		UPDATE trade_orders SET status = $1, failure_reason = $2 WHERE id = $3
	`, string(models.StatusFailed), reason, orderID)
	return err
}
