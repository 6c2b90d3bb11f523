package extraction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Label patterns mirror the allocation PDF layout issued by the
// government seller: a label, a colon, then the value on the same line.
var patterns = map[string]*regexp.Regexp{
	"indent_number":              regexp.MustCompile(`(?i)Indent\s*Number[:\s]*([A-Z0-9-]+)`),
	"buyer_type":                 regexp.MustCompile(`(?i)Buyer\s*Type[:\s]*([A-Za-z\s]+)`),
	"buyer_name":                 regexp.MustCompile(`(?i)Buyer\s*Name[:\s]*([A-Za-z\s]+)`),
	"center_name":                regexp.MustCompile(`(?i)Center\s*Name[:\s]*([A-Za-z\s]+)`),
	"branch":                     regexp.MustCompile(`(?i)Branch[:\s]*([A-Za-z\s]+)`),
	"date_of_allocation":         regexp.MustCompile(`(?i)Date\s*of\s*Allocation[:\s]*(\d{1,2}[\/-]\d{1,2}[\/-]\d{4})`),
	"firm_name":                  regexp.MustCompile(`(?i)Firm\s*Name[:\s]*([A-Za-z\s]+)`),
	"variety":                    regexp.MustCompile(`(?i)Variety[:\s]*([A-Za-z\s]+)`),
	"bales_quantity":             regexp.MustCompile(`(?i)Bales\s*Quantity[:\s]*(\d+)`),
	"crop_year":                  regexp.MustCompile(`(?i)Crop\s*Year[:\s]*(\d{4})`),
	"offer_price":                regexp.MustCompile(`(?i)Offer\s*Price[:\s]*([\d,]+\.?\d*)`),
	"bid_price":                  regexp.MustCompile(`(?i)Bid\s*Price[:\s]*([\d,]+\.?\d*)`),
	"lifting_period":             regexp.MustCompile(`(?i)Lifting\s*Period[:\s]*(\d+)`),
	"fibre_length":               regexp.MustCompile(`(?i)Fibre\s*Length[:\s]*([\d.]+)`),
	"cotton_fibre_specification": regexp.MustCompile(`(?i)Cotton\s*Fibre\s*Specification[:\s]*([^\n]+)`),
	"ccl_discount":               regexp.MustCompile(`(?i)CCL\s*Discount[:\s]*([\d.]+)`),
}

var dateSeparator = regexp.MustCompile(`[\/-]`)

// Extract applies every label pattern to text. A pattern that does not
// match leaves its field nil; a matched value that fails numeric or date
// coercion also yields nil, with a diagnostic describing the capture.
func Extract(text string) Result {
	captures := make(map[string]string, len(patterns))
	for name, pattern := range patterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			captures[name] = strings.TrimSpace(m[1])
		}
	}

	var r Result
	r.Fields.IndentNumber = capture(captures, "indent_number")
	r.Fields.BuyerType = capture(captures, "buyer_type")
	r.Fields.BuyerName = capture(captures, "buyer_name")
	r.Fields.CenterName = capture(captures, "center_name")
	r.Fields.Branch = capture(captures, "branch")
	r.Fields.FirmName = capture(captures, "firm_name")
	r.Fields.Variety = capture(captures, "variety")
	r.Fields.CropYear = capture(captures, "crop_year")
	r.Fields.CottonFibreSpecification = capture(captures, "cotton_fibre_specification")

	if raw, ok := captures["date_of_allocation"]; ok {
		normalized := normalizeDate(raw)
		r.Fields.DateOfAllocation = &normalized
	}

	r.Fields.BalesQuantity = r.coerceInt(captures, "bales_quantity")
	r.Fields.LiftingPeriod = r.coerceInt(captures, "lifting_period")
	r.Fields.OfferPrice = r.coerceFloat(captures, "offer_price")
	r.Fields.BidPrice = r.coerceFloat(captures, "bid_price")
	r.Fields.FibreLength = r.coerceFloat(captures, "fibre_length")
	r.Fields.CCLDiscount = r.coerceFloat(captures, "ccl_discount")

	return r
}

func capture(captures map[string]string, name string) *string {
	if v, ok := captures[name]; ok {
		return &v
	}
	return nil
}

func (r *Result) coerceInt(captures map[string]string, name string) *int {
	raw, ok := captures[name]
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.Diagnostics = append(r.Diagnostics, fmt.Sprintf("%s: invalid integer %q", name, raw))
		return nil
	}
	return &n
}

func (r *Result) coerceFloat(captures map[string]string, name string) *float64 {
	raw, ok := captures[name]
	if !ok {
		return nil
	}
	// thousands separators appear in price fields
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		r.Diagnostics = append(r.Diagnostics, fmt.Sprintf("%s: invalid number %q", name, raw))
		return nil
	}
	return &f
}

// normalizeDate reshapes a day-month-year date with "/" or "-"
// separators into ISO YYYY-MM-DD, zero-padding day and month. Input
// that does not split into exactly three components is returned as-is.
func normalizeDate(raw string) string {
	parts := dateSeparator.Split(raw, -1)
	if len(parts) != 3 {
		return raw
	}
	return fmt.Sprintf("%s-%s-%s", parts[2], pad2(parts[1]), pad2(parts[0]))
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
