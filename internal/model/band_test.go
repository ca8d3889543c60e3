package model

import "testing"

// TestBandOf verifies the rating-to-band mapping at every boundary.
// Band boundaries are part of the reporting contract; tests pin them down
// so that changes to the bucketing are intentional.
func TestBandOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rating int
		want   Band
	}{
		{"minimum rating is junk", 10, BandJunk},
		{"top of junk band", 17, BandJunk},
		{"bottom of poor band", 18, BandPoor},
		{"top of poor band", 25, BandPoor},
		{"bottom of fair band", 26, BandFair},
		{"top of fair band", 33, BandFair},
		{"bottom of good band", 34, BandGood},
		{"top of good band", 41, BandGood},
		{"bottom of excellent band", 42, BandExcellent},
		{"maximum rating is excellent", 50, BandExcellent},
		{"below range clamps to junk", 3, BandJunk},
		{"above range clamps to excellent", 99, BandExcellent},
		{"zero clamps to junk", 0, BandJunk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := BandOf(tt.rating); got != tt.want {
				t.Errorf("BandOf(%d) = %v, want %v", tt.rating, got, tt.want)
			}
		})
	}
}

// TestBandString verifies the human-readable band names.
func TestBandString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		band Band
		want string
	}{
		{BandJunk, "JUNK"},
		{BandPoor, "POOR"},
		{BandFair, "FAIR"},
		{BandGood, "GOOD"},
		{BandExcellent, "EXCELLENT"},
		{Band(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := tt.band.String(); got != tt.want {
				t.Errorf("Band(%d).String() = %q, want %q", tt.band, got, tt.want)
			}
		})
	}
}

// TestBands verifies that Bands returns all bands in ascending order.
func TestBands(t *testing.T) {
	t.Parallel()

	bands := Bands()
	if len(bands) != 5 {
		t.Fatalf("expected 5 bands, got %d", len(bands))
	}
	for i := 1; i < len(bands); i++ {
		if bands[i] <= bands[i-1] {
			t.Errorf("bands not ascending at index %d: %v", i, bands)
		}
	}
}

// TestValidRating verifies the accepted rating range.
func TestValidRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rating int
		want   bool
	}{
		{10, true},
		{50, true},
		{30, true},
		{9, false},
		{51, false},
		{0, false},
		{-5, false},
	}

	for _, tt := range tests {
		if got := ValidRating(tt.rating); got != tt.want {
			t.Errorf("ValidRating(%d) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}
