package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fundfigures/internal/domain/dto"
	"github.com/guttosm/fundfigures/internal/figures"
	"github.com/guttosm/fundfigures/internal/service"
	"github.com/guttosm/fundfigures/internal/storage"
)

// Handler provides HTTP handlers for trade-order figures endpoints.
//
// Responsibilities:
//   - Validate incoming JSON bodies and path/query parameters
//   - Translate requests into domain orders and invoke the service layer
//   - Map the figures error taxonomy to HTTP status codes
//   - Return structured JSON responses
type Handler struct {
	svc service.OrderService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.OrderService): Service dependency carrying the figures
//     factory and order persistence.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.OrderService) *Handler {
	return &Handler{svc: svc}
}

// statusForError maps a figures computation failure to an HTTP status:
// validation problems are the caller's fault (400), an over-redemption
// conflicts with the current position (409), a missing exchange rate makes
// the order unprocessable (422) and missing price/position data is a 404.
func statusForError(err error) int {
	var (
		vErr *figures.ValidationError
		pErr *figures.InsufficientPositionError
		cErr *figures.CurrencyResolutionError
		lErr *figures.LookupFailureError
	)
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.As(err, &pErr):
		return http.StatusConflict
	case errors.As(err, &cErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &lErr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// QuoteFigures handles POST /api/v1/figures/quote requests.
//
// QuoteFigures godoc
// @Summary      Compute figures for an order
// @Description  Derives the settlement triple (amount, price per share, shares) for an order without persisting it
// @Tags         figures
// @Accept       json
// @Produce      json
// @Param        order  body      dto.OrderRequest  true   "Order to price"
// @Param        as_of  query     string            false  "Valuation date in YYYY-MM-DD (default: today)"
// @Success      200    {object}  dto.FiguresResponse  "Success"
// @Failure      400    {object}  dto.ErrorResponse    "Bad Request"
// @Failure      404    {object}  dto.ErrorResponse    "No price or position data"
// @Failure      409    {object}  dto.ErrorResponse    "Redemption exceeds position"
// @Failure      422    {object}  dto.ErrorResponse    "No exchange rate"
// @Failure      500    {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/figures/quote [post]
func (h *Handler) QuoteFigures(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
		return
	}

	order, err := req.ToOrder()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid order", err))
		return
	}

	asOf, err := h.asOfDate(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid as_of format, expected YYYY-MM-DD", err))
		return
	}

	fig, err := h.svc.Quote(c.Request.Context(), order, asOf)
	if err != nil {
		c.JSON(statusForError(err), dto.NewErrorResponse("failed to compute figures", err))
		return
	}

	c.JSON(http.StatusOK, dto.NewFiguresResponse(fig))
}

// SubmitOrder handles POST /api/v1/orders requests.
//
// SubmitOrder godoc
// @Summary      Submit a trade order
// @Description  Persists a new trade order with status PENDING; figures are computed by the processing run
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      dto.OrderRequest  true  "Order to submit"
// @Success      201    {object}  dto.SubmitOrderResponse  "Created"
// @Failure      400    {object}  dto.ErrorResponse        "Bad Request"
// @Failure      500    {object}  dto.ErrorResponse        "Internal Error"
// @Router       /api/v1/orders [post]
func (h *Handler) SubmitOrder(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
		return
	}

	order, err := req.ToOrder()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid order", err))
		return
	}

	id, err := h.svc.Submit(c.Request.Context(), order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to submit order", err))
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitOrderResponse{ID: id, Status: "PENDING"})
}

// GetOrder handles GET /api/v1/orders/:id requests.
//
// GetOrder godoc
// @Summary      Get an order
// @Description  Returns the order and, once priced, its figures
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  dto.OrderResponse  "Success"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/orders/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	id := c.Param("id")

	order, fig, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("order not found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch order", err))
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderResponse(*order, fig))
}

// asOfDate parses the optional as_of query parameter, defaulting to
// today's date (UTC, date-only).
func (h *Handler) asOfDate(c *gin.Context) (time.Time, error) {
	if s := c.Query("as_of"); s != "" {
		return time.Parse("2006-01-02", s)
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
}
