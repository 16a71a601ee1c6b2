//go:build integration
// +build integration

package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/fundfigures/internal/domain/dto"
	"github.com/guttosm/fundfigures/internal/figures"
	"github.com/guttosm/fundfigures/internal/service"
	"github.com/guttosm/fundfigures/internal/storage"
)

func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "fundfigures",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=fundfigures sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/fundfigures?sslmode=disable", host, port.Port())
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

// newIntegrationRouter wires the full stack against a real database.
func newIntegrationRouter(t *testing.T, db *sql.DB) *gin.Engine {
	t.Helper()
	market := storage.NewMarketDataRepository(db)
	lookups := storage.NewLookups(market)
	factory := figures.NewFactory(lookups, lookups, lookups)
	svc := service.NewOrderService(storage.NewOrdersRepository(db), factory)
	return NewRouter(NewHandler(svc))
}

func TestRouter_Integration_OrderPricing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dsn, terminate := startPostgres(t)
	defer terminate()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	if err := goose.Up(db, filepath.Join("..", "..", "db", "migrations")); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	market := storage.NewMarketDataRepository(db)
	day := time.Date(2011, 9, 1, 0, 0, 0, 0, time.UTC)
	if err := market.InsertPricesBatch([]storage.PriceRow{
		{AssetID: "HF-GBP", PriceDate: day, Value: decimal.NewFromInt(5), Currency: "GBP"},
		{AssetID: "HF-USD", PriceDate: day, Value: decimal.NewFromInt(2), Currency: "USD"},
	}); err != nil {
		t.Fatalf("seed prices: %v", err)
	}
	if err := market.InsertPositionsBatch([]storage.PositionRow{
		{AssetID: "HF-GBP", FohfID: "FOHF-1", PositionDate: day, Shares: decimal.NewFromInt(100)},
	}); err != nil {
		t.Fatalf("seed positions: %v", err)
	}
	if err := market.InsertRatesBatch([]storage.RateRow{
		{FromCurrency: "GBP", ToCurrency: "USD", RateDate: day, Value: decimal.RequireFromString("1.5")},
	}); err != nil {
		t.Fatalf("seed rates: %v", err)
	}

	router := newIntegrationRouter(t, db)

	quote := func(t *testing.T, body string) (*httptest.ResponseRecorder, dto.FiguresResponse) {
		t.Helper()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/figures/quote?as_of=2011-09-01", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		var resp dto.FiguresResponse
		if w.Code == http.StatusOK {
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
		}
		return w, resp
	}

	cases := []struct {
		name       string
		body       string
		wantStatus int
		amount     string
		currency   string
		shares     string
	}{
		{
			name:       "subscription with amount",
			body:       `{"fohf_id":"FOHF-1","asset_id":"HF-GBP","asset_currency":"GBP","currency":"GBP","type":"SUBSCRIPTION","amount":100}`,
			wantStatus: 200, amount: "100", currency: "GBP", shares: "20",
		},
		{
			name:       "subscription with shares",
			body:       `{"fohf_id":"FOHF-1","asset_id":"HF-GBP","asset_currency":"GBP","currency":"GBP","type":"SUBSCRIPTION","shares":20}`,
			wantStatus: 200, amount: "100", currency: "GBP", shares: "20",
		},
		{
			name:       "cross-currency subscription",
			body:       `{"fohf_id":"FOHF-1","asset_id":"HF-USD","asset_currency":"USD","currency":"GBP","type":"SUBSCRIPTION","amount":100}`,
			wantStatus: 200, amount: "150", currency: "USD", shares: "75",
		},
		{
			name:       "redemption within position",
			body:       `{"fohf_id":"FOHF-1","asset_id":"HF-GBP","asset_currency":"GBP","currency":"GBP","type":"REDEMPTION","amount":100,"trade_date":"2011-09-01"}`,
			wantStatus: 200, amount: "100", currency: "GBP", shares: "20",
		},
		{
			name:       "redemption exceeding position",
			body:       `{"fohf_id":"FOHF-1","asset_id":"HF-GBP","asset_currency":"GBP","currency":"GBP","type":"REDEMPTION","amount":2000,"trade_date":"2011-09-01"}`,
			wantStatus: 409,
		},
		{
			name:       "percentage redemption",
			body:       `{"fohf_id":"FOHF-1","asset_id":"HF-GBP","asset_currency":"GBP","currency":"GBP","type":"REDEMPTION","percentage":50,"trade_date":"2011-09-01"}`,
			wantStatus: 200, amount: "250", currency: "GBP", shares: "50",
		},
		{
			name:       "missing exchange rate",
			body:       `{"fohf_id":"FOHF-1","asset_id":"HF-USD","asset_currency":"USD","currency":"JPY","type":"SUBSCRIPTION","amount":100}`,
			wantStatus: 422,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, resp := quote(t, tc.body)
			if w.Code != tc.wantStatus {
				t.Fatalf("status %d, want %d; body=%s", w.Code, tc.wantStatus, w.Body.String())
			}
			if tc.wantStatus != 200 {
				return
			}
			if !resp.Amount.Equal(decimal.RequireFromString(tc.amount)) ||
				resp.PriceCurrency != tc.currency ||
				!resp.Shares.Equal(decimal.RequireFromString(tc.shares)) {
				t.Fatalf("unexpected figures: %+v", resp)
			}
		})
	}

	t.Run("submit then get", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders",
			bytes.NewBufferString(`{"fohf_id":"FOHF-1","asset_id":"HF-GBP","asset_currency":"GBP","currency":"GBP","type":"SUBSCRIPTION","amount":100,"trade_date":"2011-09-01"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("submit: status %d body=%s", w.Code, w.Body.String())
		}
		var sub dto.SubmitOrderResponse
		if err := json.Unmarshal(w.Body.Bytes(), &sub); err != nil {
			t.Fatalf("decode: %v", err)
		}

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+sub.ID, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("get: status %d body=%s", w.Code, w.Body.String())
		}
		var got dto.OrderResponse
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Status != "PENDING" || got.Figures != nil {
			t.Fatalf("unexpected order: %+v", got)
		}
	})
}
