package extraction

import (
	"math"
	"testing"
)

func str(s string) *string { return &s }

func fieldsWithN(n int) Fields {
	var f Fields
	setters := []func(*Fields){
		func(f *Fields) { f.IndentNumber = str("x") },
		func(f *Fields) { f.BuyerType = str("x") },
		func(f *Fields) { f.BuyerName = str("x") },
		func(f *Fields) { f.CenterName = str("x") },
		func(f *Fields) { f.Branch = str("x") },
		func(f *Fields) { f.DateOfAllocation = str("2024-01-01") },
		func(f *Fields) { f.FirmName = str("x") },
		func(f *Fields) { f.Variety = str("x") },
		func(f *Fields) { n := 1; f.BalesQuantity = &n },
		func(f *Fields) { f.CropYear = str("2024") },
		func(f *Fields) { p := 1.0; f.OfferPrice = &p },
		func(f *Fields) { p := 1.0; f.BidPrice = &p },
	}
	for i := 0; i < n && i < len(setters); i++ {
		setters[i](&f)
	}
	return f
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name    string
		present int
		want    float64
	}{
		{"no fields", 0, 0},
		{"half", 6, 50},
		{"all", 12, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Confidence(fieldsWithN(tt.present)); got != tt.want {
				t.Errorf("Confidence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfidenceIsUnrounded(t *testing.T) {
	got := Confidence(fieldsWithN(5))
	want := 100.0 * 5.0 / 12.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Confidence(5 of 12) = %v, want %v", got, want)
	}
	if got == 41 || got == 42 {
		t.Error("confidence appears rounded")
	}
}

func TestConfidenceIgnoresOptionalFields(t *testing.T) {
	var f Fields
	lp := 45
	fl := 29.5
	f.LiftingPeriod = &lp
	f.FibreLength = &fl
	f.CottonFibreSpecification = str("RG Medium")

	if got := Confidence(f); got != 0 {
		t.Errorf("Confidence with only optional fields = %v, want 0", got)
	}
}
