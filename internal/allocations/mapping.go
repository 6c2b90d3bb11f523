package allocations

import (
	"net/url"

	"github.com/riddhisiddhi/cottonflow/pkg/query"
	"github.com/riddhisiddhi/cottonflow/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "allocations", "a").
	Project("id", "ID").
	Project("indent_number", "IndentNumber").
	Project("buyer_type", "BuyerType").
	Project("buyer_name", "BuyerName").
	Project("center_name", "CenterName").
	Project("branch", "Branch").
	Project("date_of_allocation", "DateOfAllocation").
	Project("firm_name", "FirmName").
	Project("variety", "Variety").
	Project("bales_quantity", "BalesQuantity").
	Project("crop_year", "CropYear").
	Project("offer_price", "OfferPrice").
	Project("bid_price", "BidPrice").
	Project("lifting_period", "LiftingPeriod").
	Project("fibre_length", "FibreLength").
	Project("cotton_fibre_specification", "CottonFibreSpecification").
	Project("ccl_discount", "CCLDiscount").
	Project("parsing_confidence", "ParsingConfidence").
	Project("status", "Status").
	Project("created_by", "CreatedBy").
	Project("pdf_filename", "PDFFilename").
	Project("pdf_url", "PDFURL").
	Project("email_log_id", "EmailLogID").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for allocation queries.
type Filters struct {
	Status    *string `json:"status,omitempty"`
	BuyerType *string `json:"buyer_type,omitempty"`
	CropYear  *string `json:"crop_year,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("BuyerType", f.BuyerType).
		WhereEquals("CropYear", f.CropYear)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" && s != "all" {
		f.Status = &s
	}

	if bt := values.Get("buyer_type"); bt != "" {
		f.BuyerType = &bt
	}

	if cy := values.Get("crop_year"); cy != "" {
		f.CropYear = &cy
	}

	return f
}

func scanAllocation(s repository.Scanner) (Allocation, error) {
	var a Allocation
	err := s.Scan(
		&a.ID,
		&a.IndentNumber,
		&a.BuyerType,
		&a.BuyerName,
		&a.CenterName,
		&a.Branch,
		&a.DateOfAllocation,
		&a.FirmName,
		&a.Variety,
		&a.BalesQuantity,
		&a.CropYear,
		&a.OfferPrice,
		&a.BidPrice,
		&a.LiftingPeriod,
		&a.FibreLength,
		&a.CottonFibreSpecification,
		&a.CCLDiscount,
		&a.ParsingConfidence,
		&a.Status,
		&a.CreatedBy,
		&a.PDFFilename,
		&a.PDFURL,
		&a.EmailLogID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
