package seed

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/fundfigures/internal/logger"
	"github.com/guttosm/fundfigures/internal/storage"
)

const (
	pricesFile    = "prices.csv"
	positionsFile = "positions.csv"
	ratesFile     = "fx_rates.csv"

	defaultBatchSize = 5000
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.MarketDataRepository {
	return storage.NewMarketDataRepository(db)
}

// LoadDirectory loads the market data seed files from dir into the database.
//
// Parameters:
//   - dir: directory containing prices.csv, positions.csv and fx_rates.csv.
//   - db:  open *sql.DB (PostgreSQL).
//
// Behavior:
//   - All three files must exist; missing files are reported upfront.
//   - Files are loaded in parallel, each parsed strictly (header order and
//     column count must match) and inserted in batches.
//   - If any file fails, the rest are cancelled and that error is returned.
//
// Returns:
//   - error: first error encountered (if any).
func LoadDirectory(ctx context.Context, dir string, db *sql.DB) error {
	repo := repoCtor(db)

	files := []string{pricesFile, positionsFile, ratesFile}
	var missing []string
	for _, name := range files {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, name)
			} else {
				return fmt.Errorf("stat failed for %s: %w", name, err)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required files: %s", strings.Join(missing, ", "))
	}

	logger.L().Info().Str("dir", dir).Msg("seed start")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return loadPrices(gctx, filepath.Join(dir, pricesFile), repo) })
	g.Go(func() error { return loadPositions(gctx, filepath.Join(dir, positionsFile), repo) })
	g.Go(func() error { return loadRates(gctx, filepath.Join(dir, ratesFile), repo) })

	if err := g.Wait(); err != nil {
		return err
	}

	logger.L().Info().Str("dir", dir).Msg("seed done")
	return nil
}

func loadPrices(ctx context.Context, path string, repo storage.MarketDataRepository) error {
	start := time.Now()
	buf := make([]storage.PriceRow, 0, defaultBatchSize)

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := repo.InsertPricesBatch(buf); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}

	total, err := parseFile(ctx, path, priceHeaders, func(rec []string) error {
		row, err := recordToPrice(rec)
		if err != nil {
			return err
		}
		buf = append(buf, row)
		if len(buf) >= defaultBatchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("file %s: %w", path, err)
	}
	if err := flush(); err != nil {
		return fmt.Errorf("file %s: final flush: %w", path, err)
	}

	logger.L().Info().Str("file", pricesFile).Int("rows", total).Dur("elapsed", time.Since(start)).Msg("file done")
	return nil
}

func loadPositions(ctx context.Context, path string, repo storage.MarketDataRepository) error {
	start := time.Now()
	buf := make([]storage.PositionRow, 0, defaultBatchSize)

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := repo.InsertPositionsBatch(buf); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}

	total, err := parseFile(ctx, path, positionHeaders, func(rec []string) error {
		row, err := recordToPosition(rec)
		if err != nil {
			return err
		}
		buf = append(buf, row)
		if len(buf) >= defaultBatchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("file %s: %w", path, err)
	}
	if err := flush(); err != nil {
		return fmt.Errorf("file %s: final flush: %w", path, err)
	}

	logger.L().Info().Str("file", positionsFile).Int("rows", total).Dur("elapsed", time.Since(start)).Msg("file done")
	return nil
}

func loadRates(ctx context.Context, path string, repo storage.MarketDataRepository) error {
	start := time.Now()
	buf := make([]storage.RateRow, 0, defaultBatchSize)

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := repo.InsertRatesBatch(buf); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}

	total, err := parseFile(ctx, path, rateHeaders, func(rec []string) error {
		row, err := recordToRate(rec)
		if err != nil {
			return err
		}
		buf = append(buf, row)
		if len(buf) >= defaultBatchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("file %s: %w", path, err)
	}
	if err := flush(); err != nil {
		return fmt.Errorf("file %s: final flush: %w", path, err)
	}

	logger.L().Info().Str("file", ratesFile).Int("rows", total).Dur("elapsed", time.Since(start)).Msg("file done")
	return nil
}
