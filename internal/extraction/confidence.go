package extraction

// The required-field checklist used to score extraction completeness.
// Optional fields (lifting period, fibre specs, CCL discount) do not
// count toward confidence.
const requiredFieldCount = 12

// Confidence returns the percentage (0-100) of checklist fields that
// were populated. No rounding is applied; callers that display the
// value round it themselves.
func Confidence(f Fields) float64 {
	present := 0
	for _, ok := range []bool{
		f.IndentNumber != nil,
		f.BuyerType != nil,
		f.BuyerName != nil,
		f.CenterName != nil,
		f.Branch != nil,
		f.DateOfAllocation != nil,
		f.FirmName != nil,
		f.Variety != nil,
		f.BalesQuantity != nil,
		f.CropYear != nil,
		f.OfferPrice != nil,
		f.BidPrice != nil,
	} {
		if ok {
			present++
		}
	}
	return float64(present) / float64(requiredFieldCount) * 100
}
