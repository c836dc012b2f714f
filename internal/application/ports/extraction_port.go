package ports

import (
	"context"

	"github.com/minatoent/backoffice-api/internal/domain/identity"
)

// ExtractionService is the outbound port for the AI document extraction
// collaborator. Any adapter (Gemini, a mock, a future on-prem OCR) implements
// this contract; the application layer only knows the interface.
//
// One call is one attempt: the adapter must not retry internally. The context
// carries the per-call timeout; latency and failure handling belong to the
// caller.
type ExtractionService interface {
	// ExtractCardSide reads one side of an ID card image and returns the raw
	// field set the model produced. Values are unvalidated; reconciliation
	// happens in the identity package.
	ExtractCardSide(ctx context.Context, imagePath, side string) (*identity.FieldSet, error)
}
