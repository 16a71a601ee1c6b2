package processing

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/fundfigures/internal/figures"
	"github.com/guttosm/fundfigures/internal/logger"
	"github.com/guttosm/fundfigures/internal/service"
	"github.com/guttosm/fundfigures/internal/storage"
)

const defaultBatchSize = 500

// svcCtor is an indirection for building the order service; tests can override this.
var svcCtor = func(db *sql.DB) (service.OrderService, storage.OrdersRepository) {
	market := storage.NewMarketDataRepository(db)
	orders := storage.NewOrdersRepository(db)
	lookups := storage.NewLookups(market)
	factory := figures.NewFactory(lookups, lookups, lookups)
	return service.NewOrderService(orders, factory), orders
}

// Run prices all PENDING trade orders in one batch run.
//
// Parameters:
//   - ctx:       context for cancellation/timeouts.
//   - db:        open *sql.DB (PostgreSQL).
//   - batchSize: maximum number of pending orders loaded per run (<=0 uses default).
//   - parallel:  worker count, clamp(1..7); <=0 defaults to min(7, NumCPU).
//
// Behavior:
//   - Loads up to batchSize PENDING orders.
//   - Prices them concurrently with a bounded worker pool.
//   - Business rejections (bad quantity, over-redemption, missing market data)
//     mark the order FAILED and the run continues.
//   - Infrastructure errors cancel the remaining workers and fail the run,
//     leaving untouched orders PENDING for the next run.
//
// Returns:
//   - error: first infrastructure error encountered (if any).
func Run(ctx context.Context, db *sql.DB, batchSize, parallel int) error {
	svc, orders := svcCtor(db)

	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	pending, err := orders.ListPending(batchSize)
	if err != nil {
		return fmt.Errorf("list pending orders: %w", err)
	}
	if len(pending) == 0 {
		logger.L().Info().Msg("no pending orders")
		return nil
	}

	// Concurrency: default to min(7, NumCPU), or use provided clamp(1..7)
	maxParallel := 7
	if parallel > 0 {
		if parallel > 7 {
			parallel = 7
		}
		maxParallel = parallel
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	asOf := time.Now().UTC().Truncate(24 * time.Hour)
	logger.L().Info().
		Int("orders", len(pending)).
		Int("max_parallel", maxParallel).
		Time("as_of", asOf).
		Msg("pricing run start")

	// errgroup will cancel siblings on first infrastructure error.
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxParallel)

	for i, order := range pending {
		idx := i
		o := order
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()

			fig, err := svc.Price(gctx, o.ID, asOf)
			if err != nil {
				if service.IsRejection(err) {
					// Order already marked FAILED by the service; keep going.
					logger.L().Warn().
						Int("idx", idx+1).
						Int("total", len(pending)).
						Str("order_id", o.ID).
						Err(err).
						Msg("order rejected")
					return nil
				}
				logger.L().Error().
					Str("order_id", o.ID).
					Dur("elapsed", time.Since(start)).
					Err(err).
					Msg("order failed")
				return fmt.Errorf("order %s: %w", o.ID, err)
			}

			logger.L().Info().
				Int("idx", idx+1).
				Int("total", len(pending)).
				Str("order_id", o.ID).
				Str("amount", fig.Amount.String()).
				Str("shares", fig.Shares.String()).
				Dur("elapsed", time.Since(start)).
				Msg("order priced")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.L().Info().Int("orders", len(pending)).Msg("pricing run done")
	return nil
}
