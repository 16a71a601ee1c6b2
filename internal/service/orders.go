package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/fundfigures/internal/domain/models"
	"github.com/guttosm/fundfigures/internal/figures"
	"github.com/guttosm/fundfigures/internal/storage"
)

// IsRejection reports whether a pricing error is a business rejection of
// the order (marked FAILED, not retried) rather than an infrastructure
// failure (order left PENDING for a later run). A lookup failure rejects
// only when the collaborator had no data for the asset/date; a transient
// storage error must not burn the order.
func IsRejection(err error) bool {
	var lErr *figures.LookupFailureError
	if errors.As(err, &lErr) {
		return errors.Is(err, storage.ErrNotFound)
	}
	return figures.IsRejection(err)
}

// OrderService defines business logic for trade orders and their figures.
// This decouples HTTP handlers and batch processing from data access.
type OrderService interface {
	// Quote computes figures for an order without persisting anything.
	Quote(ctx context.Context, order models.TradeOrder, asOf time.Time) (models.Figures, error)
	// Submit persists a new PENDING order and returns its ID.
	Submit(ctx context.Context, order models.TradeOrder) (string, error)
	// Price loads a persisted order, computes its figures and stores the
	// result. Business rejections mark the order FAILED.
	Price(ctx context.Context, orderID string, asOf time.Time) (models.Figures, error)
	// Get returns a persisted order and its figures, if priced.
	Get(ctx context.Context, id string) (*models.TradeOrder, *models.Figures, error)
}

type orderService struct {
	orders  storage.OrdersRepository
	factory *figures.Factory
}

func NewOrderService(orders storage.OrdersRepository, factory *figures.Factory) OrderService {
	return &orderService{orders: orders, factory: factory}
}

func (s *orderService) Quote(ctx context.Context, order models.TradeOrder, asOf time.Time) (models.Figures, error) {
	return s.factory.BuildFrom(ctx, order, asOf)
}

func (s *orderService) Submit(_ context.Context, order models.TradeOrder) (string, error) {
	order.Status = models.StatusPending
	return s.orders.Insert(order)
}

func (s *orderService) Price(ctx context.Context, orderID string, asOf time.Time) (models.Figures, error) {
	order, existing, err := s.orders.Get(orderID)
	if err != nil {
		return models.Figures{}, err
	}

	// Idempotency: a priced order keeps its stored figures.
	if order.Status == models.StatusPriced && existing != nil {
		return *existing, nil
	}

	fig, err := s.factory.BuildFrom(ctx, *order, asOf)
	if err != nil {
		if IsRejection(err) {
			if markErr := s.orders.MarkFailed(orderID, err.Error()); markErr != nil {
				return models.Figures{}, fmt.Errorf("mark order %s failed: %w", orderID, markErr)
			}
		}
		return models.Figures{}, err
	}

	if err := s.orders.SaveFigures(orderID, fig); err != nil {
		return models.Figures{}, fmt.Errorf("save figures for order %s: %w", orderID, err)
	}
	return fig, nil
}

func (s *orderService) Get(_ context.Context, id string) (*models.TradeOrder, *models.Figures, error) {
	return s.orders.Get(id)
}
