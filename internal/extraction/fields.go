// Package extraction turns OCR text from allocation PDFs into structured
// fields and scores how complete the extraction was.
package extraction

// Fields is the structured output of label-pattern extraction. A nil
// field means its label was not found in the text, or its captured
// value failed coercion (recorded as a diagnostic).
type Fields struct {
	IndentNumber             *string  `json:"indent_number"`
	BuyerType                *string  `json:"buyer_type"`
	BuyerName                *string  `json:"buyer_name"`
	CenterName               *string  `json:"center_name"`
	Branch                   *string  `json:"branch"`
	DateOfAllocation         *string  `json:"date_of_allocation"`
	FirmName                 *string  `json:"firm_name"`
	Variety                  *string  `json:"variety"`
	BalesQuantity            *int     `json:"bales_quantity"`
	CropYear                 *string  `json:"crop_year"`
	OfferPrice               *float64 `json:"offer_price"`
	BidPrice                 *float64 `json:"bid_price"`
	LiftingPeriod            *int     `json:"lifting_period"`
	FibreLength              *float64 `json:"fibre_length"`
	CottonFibreSpecification *string  `json:"cotton_fibre_specification"`
	CCLDiscount              *float64 `json:"ccl_discount"`
}

// Result carries extracted fields plus per-field coercion diagnostics.
// Diagnostics are informational; a malformed capture never fails the
// extraction, it just leaves the field nil.
type Result struct {
	Fields      Fields   `json:"fields"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}
