package service

import "testing"

func i64(v int64) *int64 { return &v }

func TestCalculateTotalCents_ExactDecimal(t *testing.T) {
	// 3 x 33.33 must be exactly 99.99, no floating drift
	got := CalculateTotalCents(i64(3), i64(3333))
	if got != 9999 {
		t.Fatalf("expected 9999, got %d", got)
	}
}

func TestCalculateTotalCents_NilQuantityIsZero(t *testing.T) {
	if got := CalculateTotalCents(nil, i64(5000)); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestCalculateTotalCents_NilUnitPriceIsZero(t *testing.T) {
	if got := CalculateTotalCents(i64(7), nil); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestCalculateTotalCents_BothNil(t *testing.T) {
	if got := CalculateTotalCents(nil, nil); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{9999, "99.99"},
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{123456789, "1234567.89"},
		{-2550, "-25.50"},
	}
	for _, tc := range cases {
		if got := FormatCents(tc.cents); got != tc.want {
			t.Fatalf("FormatCents(%d): expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}
