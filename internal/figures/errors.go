package figures

import (
	"errors"
	"fmt"

	"github.com/guttosm/fundfigures/internal/domain/models"
	"github.com/shopspring/decimal"
)

// ValidationError rejects an order whose quantity specification is
// missing, non-positive, or used in the wrong context (percentage on a
// subscription).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid order: " + e.Reason
}

// InsufficientPositionError rejects a redemption that asks for more
// shares than the investor currently holds.
type InsufficientPositionError struct {
	Requested decimal.Decimal
	Held      decimal.Decimal
}

func (e *InsufficientPositionError) Error() string {
	return fmt.Sprintf("redemption of %s shares exceeds current position of %s shares",
		e.Requested.String(), e.Held.String())
}

// CurrencyResolutionError reports that no exchange rate could be obtained
// for a required currency pair.
type CurrencyResolutionError struct {
	From models.Currency
	To   models.Currency
	Err  error
}

func (e *CurrencyResolutionError) Error() string {
	return fmt.Sprintf("no exchange rate from %s to %s: %v", e.From, e.To, e.Err)
}

func (e *CurrencyResolutionError) Unwrap() error { return e.Err }

// LookupFailureError reports that the price or position collaborator could
// not produce data for the requested asset/date.
type LookupFailureError struct {
	What string // "best price" or "position"
	Err  error
}

func (e *LookupFailureError) Error() string {
	return fmt.Sprintf("%s lookup failed: %v", e.What, e.Err)
}

func (e *LookupFailureError) Unwrap() error { return e.Err }

// IsRejection reports whether err is unconditionally a business rejection
// of the order (as opposed to an infrastructure failure). Rejected orders
// are marked FAILED and not retried; infrastructure failures leave the
// order PENDING. Lookup failures are not included here: whether they
// reject depends on their cause (no data vs. a transient collaborator
// error), which only a storage-aware caller can classify.
func IsRejection(err error) bool {
	var (
		vErr *ValidationError
		pErr *InsufficientPositionError
		cErr *CurrencyResolutionError
	)
	return errors.As(err, &vErr) || errors.As(err, &pErr) || errors.As(err, &cErr)
}
