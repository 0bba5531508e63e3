package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"2.345", "2.35"},
		{"-2.345", "-2.35"},
		{"-0.005", "-0.01"},
		{"33.333333", "33.33"},
		{"100", "100"},
		{"0.125", "0.13"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Round(MustParse(tt.in))
			if !got.Equal(MustParse(tt.want)) {
				t.Errorf("Round(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundHasTwoPlaces(t *testing.T) {
	values := []string{"0.01", "9999.999", "1234.5678", "0.333333333", "10000"}
	for _, v := range values {
		got := Round(MustParse(v))
		if got.Exponent() < -Places {
			t.Errorf("Round(%s) = %s has more than %d fractional digits", v, got, Places)
		}
	}
}

func TestDiv(t *testing.T) {
	tests := []struct {
		value string
		n     int
		want  string
	}{
		{"100", 3, "33.33"},
		{"200", 3, "66.67"},
		{"0.05", 2, "0.03"},
		{"10", 4, "2.5"},
	}

	for _, tt := range tests {
		got := Div(MustParse(tt.value), tt.n)
		if !got.Equal(MustParse(tt.want)) {
			t.Errorf("Div(%s, %d) = %s, want %s", tt.value, tt.n, got, tt.want)
		}
	}
}

func TestSum(t *testing.T) {
	got := Sum(MustParse("0.1"), MustParse("0.2"), MustParse("0.3"))
	if !got.Equal(MustParse("0.6")) {
		t.Errorf("Sum = %s, want 0.6", got)
	}
	if !Sum().Equal(decimal.Zero) {
		t.Errorf("Sum() = %s, want 0", Sum())
	}
}

func TestIsSettled(t *testing.T) {
	if !IsSettled(MustParse("0.009")) {
		t.Error("0.009 should be settled")
	}
	if !IsSettled(MustParse("-0.009")) {
		t.Error("-0.009 should be settled")
	}
	if IsSettled(Cent) {
		t.Error("one cent should not be settled")
	}
	if IsSettled(MustParse("-0.01")) {
		t.Error("minus one cent should not be settled")
	}
}

func TestWithin(t *testing.T) {
	if !Within(MustParse("10.00"), MustParse("10.01"), Cent) {
		t.Error("10.00 and 10.01 should be within a cent")
	}
	if Within(MustParse("10.00"), MustParse("10.02"), Cent) {
		t.Error("10.00 and 10.02 should not be within a cent")
	}
}
