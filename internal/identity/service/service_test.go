package service

import "testing"

func TestNormalizeMobileEmptyIsNil(t *testing.T) {
	if got := normalizeMobile(""); got != nil {
		t.Fatalf("expected nil for empty mobile, got %q", *got)
	}
}

func TestNormalizeMobileFormatsToE164(t *testing.T) {
	got := normalizeMobile("98765 43210")
	if got == nil {
		t.Fatal("expected normalized mobile, got nil")
	}
	if *got != "+919876543210" {
		t.Fatalf("expected +919876543210, got %q", *got)
	}
}

func TestNormalizeMobileKeepsInternationalPrefix(t *testing.T) {
	got := normalizeMobile("+31 6 12345678")
	if got == nil {
		t.Fatal("expected normalized mobile, got nil")
	}
	if *got != "+31612345678" {
		t.Fatalf("expected +31612345678, got %q", *got)
	}
}

func TestNormalizeMobileKeepsUnparseableInput(t *testing.T) {
	got := normalizeMobile("extension 42")
	if got == nil {
		t.Fatal("expected passthrough value, got nil")
	}
	if *got != "extension 42" {
		t.Fatalf("expected trimmed passthrough, got %q", *got)
	}
}
