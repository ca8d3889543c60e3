package model

// Band groups ratings into quality buckets for reporting.
// The 10-50 rating scale is what the model works with; bands exist so that
// reports can summarize thousands of evaluations at a glance.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Band int

const (
	// BandJunk covers ratings 10-17: typos, random strings, non-words.
	BandJunk Band = iota

	// BandPoor covers ratings 18-25: obscure or awkward entries that most
	// solvers would not recognize.
	BandPoor

	// BandFair covers ratings 26-33: legitimate but dull fill.
	BandFair

	// BandGood covers ratings 34-41: solid, recognizable entries.
	BandGood

	// BandExcellent covers ratings 42-50: common, lively words that
	// constructors actively want in a grid.
	BandExcellent
)

// bandWidth is the size of each band on the 10-50 scale.
// Five bands over 41 possible ratings; the top band absorbs the remainder.
const bandWidth = 8

// BandOf returns the band for a rating. Ratings outside the valid range are
// clamped to the nearest band so that callers summarizing historical data
// never see an invalid band.
func BandOf(rating int) Band {
	if rating < MinRating {
		return BandJunk
	}
	if rating > MaxRating {
		return BandExcellent
	}
	b := Band((rating - MinRating) / bandWidth)
	if b > BandExcellent {
		b = BandExcellent
	}
	return b
}

// String returns a human-readable representation of the band.
func (b Band) String() string {
	switch b {
	case BandJunk:
		return "JUNK"
	case BandPoor:
		return "POOR"
	case BandFair:
		return "FAIR"
	case BandGood:
		return "GOOD"
	case BandExcellent:
		return "EXCELLENT"
	default:
		return "UNKNOWN"
	}
}

// Bands returns all bands in ascending quality order.
// Report writers iterate this to render distribution tables consistently.
func Bands() []Band {
	return []Band{BandJunk, BandPoor, BandFair, BandGood, BandExcellent}
}
