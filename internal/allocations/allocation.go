// Package allocations implements the cotton allocation domain for CottonFlow.
// An allocation row holds the fields lifted off a government sale confirmation
// PDF, its parsing confidence, and the review status derived from it.
package allocations

import (
	"time"

	"github.com/google/uuid"

	"github.com/riddhisiddhi/cottonflow/internal/extraction"
)

// Review statuses.
const (
	StatusApproved      = "approved"
	StatusPendingReview = "pending_review"
)

// ConfidenceThreshold is the parsing confidence above which an allocation is
// auto-approved. The comparison is strict: exactly 80 still goes to review.
const ConfidenceThreshold = 80.0

// DeriveStatus returns the review status for a parsing confidence score.
func DeriveStatus(confidence float64) string {
	if confidence > ConfidenceThreshold {
		return StatusApproved
	}
	return StatusPendingReview
}

// Allocation is a persisted cotton sale allocation.
type Allocation struct {
	ID                       uuid.UUID  `json:"id"`
	IndentNumber             *string    `json:"indent_number"`
	BuyerType                *string    `json:"buyer_type"`
	BuyerName                *string    `json:"buyer_name"`
	CenterName               *string    `json:"center_name"`
	Branch                   *string    `json:"branch"`
	DateOfAllocation         *string    `json:"date_of_allocation"`
	FirmName                 *string    `json:"firm_name"`
	Variety                  *string    `json:"variety"`
	BalesQuantity            *int       `json:"bales_quantity"`
	CropYear                 *string    `json:"crop_year"`
	OfferPrice               *float64   `json:"offer_price"`
	BidPrice                 *float64   `json:"bid_price"`
	LiftingPeriod            *int       `json:"lifting_period"`
	FibreLength              *float64   `json:"fibre_length"`
	CottonFibreSpecification *string    `json:"cotton_fibre_specification"`
	CCLDiscount              *float64   `json:"ccl_discount"`
	ParsingConfidence        float64    `json:"parsing_confidence"`
	Status                   string     `json:"status"`
	CreatedBy                string     `json:"created_by"`
	PDFFilename              *string    `json:"pdf_filename"`
	PDFURL                   *string    `json:"pdf_url"`
	EmailLogID               *uuid.UUID `json:"email_log_id"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

// CreateCommand carries the data needed to persist an extracted allocation.
// EmailLogID ties the row back to the email it came from.
type CreateCommand struct {
	Fields      extraction.Fields
	Confidence  float64
	PDFFilename string
	PDFURL      string
	EmailLogID  uuid.UUID
}
