package alphavantage

import (
	"github.com/shopspring/decimal"

	"stock_quote/internal/feature/quote/domain/entity"
)

// Outcome is the result of one quote request. It is one of Success,
// SchemaMismatch, Unavailable or ConfigMissing.
type Outcome interface {
	isOutcome()
}

// Success carries the parsed price and the provider's response body.
type Success struct {
	Price decimal.Decimal
	Raw   entity.Diagnostic
}

// SchemaMismatch means the response was valid JSON but held no usable price.
type SchemaMismatch struct {
	Raw entity.Diagnostic
}

// Unavailable means the request failed (network, timeout, HTTP status or undecodable body).
type Unavailable struct {
	Detail string // "<error type>: <message>"
}

// ConfigMissing means no API key is configured; no request was made.
type ConfigMissing struct{}

func (Success) isOutcome()        {}
func (SchemaMismatch) isOutcome() {}
func (Unavailable) isOutcome()    {}
func (ConfigMissing) isOutcome()  {}

// collapse turns an outcome into the (price, diagnostic) pair used by the quote usecase.
func collapse(o Outcome) (decimal.NullDecimal, entity.Diagnostic) {
	switch o := o.(type) {
	case Success:
		return decimal.NewNullDecimal(o.Price), o.Raw
	case SchemaMismatch:
		return decimal.NullDecimal{}, o.Raw
	case Unavailable:
		return decimal.NullDecimal{}, entity.NewErrorDiagnostic(entity.DiagnosticRequestFailed, o.Detail)
	case ConfigMissing:
		return decimal.NullDecimal{}, entity.NewErrorDiagnostic(entity.DiagnosticMissingAPIKey, "")
	default:
		return decimal.NullDecimal{}, entity.NewErrorDiagnostic(entity.UnknownReason, "")
	}
}
