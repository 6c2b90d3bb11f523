package extraction

import (
	"strings"
	"testing"
)

const sampleText = `
Sale Confirmation of FP Bales

Indent Number: CCI-2024-00123
Buyer Type: Mill
Buyer Name: Shree Ganesh Spinners
Center Name: Akola
Branch: Maharashtra
Date of Allocation: 15/03/2024
Firm Name: Riddhi Siddhi Cotton
Variety: Shankar
Bales Quantity: 150
Crop Year: 2024
Offer Price: 12,345.50
Bid Price: 12,500
Lifting Period: 45
Fibre Length: 29.5
Cotton Fibre Specification: RG Medium Staple
CCL Discount: 2.5
`

func TestExtractAllFields(t *testing.T) {
	r := Extract(sampleText)
	f := r.Fields

	if len(r.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v, want none", r.Diagnostics)
	}
	if f.IndentNumber == nil || *f.IndentNumber != "CCI-2024-00123" {
		t.Errorf("IndentNumber = %v", f.IndentNumber)
	}
	if f.DateOfAllocation == nil || *f.DateOfAllocation != "2024-03-15" {
		t.Errorf("DateOfAllocation = %v, want 2024-03-15", f.DateOfAllocation)
	}
	if f.BalesQuantity == nil || *f.BalesQuantity != 150 {
		t.Errorf("BalesQuantity = %v, want 150", f.BalesQuantity)
	}
	if f.OfferPrice == nil || *f.OfferPrice != 12345.5 {
		t.Errorf("OfferPrice = %v, want 12345.5", f.OfferPrice)
	}
	if f.BidPrice == nil || *f.BidPrice != 12500 {
		t.Errorf("BidPrice = %v, want 12500", f.BidPrice)
	}
	if f.LiftingPeriod == nil || *f.LiftingPeriod != 45 {
		t.Errorf("LiftingPeriod = %v, want 45", f.LiftingPeriod)
	}
	if f.FibreLength == nil || *f.FibreLength != 29.5 {
		t.Errorf("FibreLength = %v, want 29.5", f.FibreLength)
	}
	if f.CCLDiscount == nil || *f.CCLDiscount != 2.5 {
		t.Errorf("CCLDiscount = %v, want 2.5", f.CCLDiscount)
	}
	if f.CropYear == nil || *f.CropYear != "2024" {
		t.Errorf("CropYear = %v, want 2024", f.CropYear)
	}
}

func TestExtractMissingFieldsAreNil(t *testing.T) {
	r := Extract("Indent Number: ABC-1\nCrop Year: 2023\n")
	f := r.Fields

	if f.IndentNumber == nil || *f.IndentNumber != "ABC-1" {
		t.Errorf("IndentNumber = %v, want ABC-1", f.IndentNumber)
	}
	if f.CropYear == nil || *f.CropYear != "2023" {
		t.Errorf("CropYear = %v, want 2023", f.CropYear)
	}
	if f.BuyerName != nil {
		t.Errorf("BuyerName = %v, want nil", *f.BuyerName)
	}
	if f.OfferPrice != nil {
		t.Errorf("OfferPrice = %v, want nil", *f.OfferPrice)
	}
	if f.DateOfAllocation != nil {
		t.Errorf("DateOfAllocation = %v, want nil", *f.DateOfAllocation)
	}
}

func TestExtractEmptyText(t *testing.T) {
	r := Extract("")
	if got := Confidence(r.Fields); got != 0 {
		t.Errorf("Confidence on empty text = %v, want 0", got)
	}
}

func TestExtractMalformedIntegerYieldsDiagnostic(t *testing.T) {
	// digits beyond int64 range survive the pattern but fail coercion
	r := Extract("Bales Quantity: 99999999999999999999999999\n")

	if r.Fields.BalesQuantity != nil {
		t.Errorf("BalesQuantity = %v, want nil", *r.Fields.BalesQuantity)
	}
	if len(r.Diagnostics) != 1 || !strings.Contains(r.Diagnostics[0], "bales_quantity") {
		t.Errorf("Diagnostics = %v, want one bales_quantity entry", r.Diagnostics)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"slash separated", "15/03/2024", "2024-03-15"},
		{"dash separated", "5-3-2024", "2024-03-05"},
		{"mixed separators", "5/3-2024", "2024-03-05"},
		{"not three components", "2024", "2024"},
		{"too many components", "1/2/3/4", "1/2/3/4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeDate(tt.input); got != tt.want {
				t.Errorf("normalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCommaStrippedNumericCoercion(t *testing.T) {
	r := Extract("Offer Price: 12,345.50\n")
	if r.Fields.OfferPrice == nil || *r.Fields.OfferPrice != 12345.5 {
		t.Errorf("OfferPrice = %v, want 12345.5", r.Fields.OfferPrice)
	}
}
