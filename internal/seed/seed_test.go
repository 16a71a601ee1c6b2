package seed

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/fundfigures/internal/domain/models"
	"github.com/guttosm/fundfigures/internal/storage"
)

// captureRepo records batch inserts; lookups are unused by seeding.
type captureRepo struct {
	mu        sync.Mutex
	prices    []storage.PriceRow
	positions []storage.PositionRow
	rates     []storage.RateRow
	insertErr error
}

func (r *captureRepo) BestPrice(string, time.Time) (models.Price, error) {
	return models.Price{}, storage.ErrNotFound
}
func (r *captureRepo) AssetPosition(string, string, time.Time) (models.Position, error) {
	return models.Position{}, storage.ErrNotFound
}
func (r *captureRepo) Rate(models.Currency, models.Currency, time.Time) (models.ExchangeRate, error) {
	return models.ExchangeRate{}, storage.ErrNotFound
}
func (r *captureRepo) InsertPricesBatch(rows []storage.PriceRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.prices = append(r.prices, rows...)
	return nil
}
func (r *captureRepo) InsertPositionsBatch(rows []storage.PositionRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.positions = append(r.positions, rows...)
	return nil
}
func (r *captureRepo) InsertRatesBatch(rows []storage.RateRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.rates = append(r.rates, rows...)
	return nil
}

func overrideRepo(t *testing.T, repo storage.MarketDataRepository) {
	t.Helper()
	old := repoCtor
	repoCtor = func(*sql.DB) storage.MarketDataRepository { return repo }
	t.Cleanup(func() { repoCtor = old })
}

func writeSeedDir(t *testing.T, prices, positions, rates string) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, pricesFile, prices)
	writeFile(t, dir, positionsFile, positions)
	writeFile(t, dir, ratesFile, rates)
	return dir
}

func TestLoadDirectory_Success(t *testing.T) {
	repo := &captureRepo{}
	overrideRepo(t, repo)

	dir := writeSeedDir(t,
		"asset_id,price_date,value,currency\nHF-1,2011-09-01,5,GBP\nHF-2,2011-09-01,2,USD\n",
		"asset_id,fohf_id,position_date,shares\nHF-1,FOHF-1,2011-09-01,100\n",
		"from_currency,to_currency,rate_date,value\nGBP,USD,2011-09-01,1.5\n")

	if err := LoadDirectory(context.Background(), dir, nil); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(repo.prices) != 2 || len(repo.positions) != 1 || len(repo.rates) != 1 {
		t.Fatalf("loaded %d/%d/%d rows, want 2/1/1", len(repo.prices), len(repo.positions), len(repo.rates))
	}
}

func TestLoadDirectory_MissingFiles(t *testing.T) {
	repo := &captureRepo{}
	overrideRepo(t, repo)

	dir := t.TempDir()
	writeFile(t, dir, pricesFile, "asset_id,price_date,value,currency\n")

	err := LoadDirectory(context.Background(), dir, nil)
	if err == nil {
		t.Fatalf("expected error for missing files")
	}
	for _, name := range []string{positionsFile, ratesFile} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q does not name missing file %s", err, name)
		}
	}
}

func TestLoadDirectory_BadRowFailsWholeLoad(t *testing.T) {
	repo := &captureRepo{}
	overrideRepo(t, repo)

	dir := writeSeedDir(t,
		"asset_id,price_date,value,currency\nHF-1,2011-09-01,not-a-number,GBP\n",
		"asset_id,fohf_id,position_date,shares\n",
		"from_currency,to_currency,rate_date,value\n")

	err := LoadDirectory(context.Background(), dir, nil)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err=%v, want line-numbered parse error", err)
	}
}

func TestLoadDirectory_InsertErrorPropagates(t *testing.T) {
	repo := &captureRepo{insertErr: errors.New("db down")}
	overrideRepo(t, repo)

	dir := writeSeedDir(t,
		"asset_id,price_date,value,currency\nHF-1,2011-09-01,5,GBP\n",
		"asset_id,fohf_id,position_date,shares\n",
		"from_currency,to_currency,rate_date,value\n")

	if err := LoadDirectory(context.Background(), dir, nil); err == nil {
		t.Fatalf("expected insert error to propagate")
	}
}
