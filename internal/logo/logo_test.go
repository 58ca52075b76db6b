package logo

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDataURLAcceptsImage(t *testing.T) {
	got, err := DataURL("image/png", []byte{0x89, 0x50, 0x4E, 0x47})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %q", got)
	}
}

func TestDataURLNormalisesContentType(t *testing.T) {
	got, err := DataURL(" Image/JPEG; charset=binary ", []byte("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "data:image/jpeg;base64,") {
		t.Fatalf("unexpected prefix: %q", got)
	}
}

func TestDataURLRejectsNonImage(t *testing.T) {
	if _, err := DataURL("application/pdf", []byte("%PDF")); !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
	if _, err := DataURL("", []byte("x")); !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage for empty type, got %v", err)
	}
	if _, err := DataURL("image/", []byte("x")); !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage for bare image/, got %v", err)
	}
}

func TestDataURLRejectsOversized(t *testing.T) {
	big := bytes.Repeat([]byte{1}, MaxBytes+1)
	if _, err := DataURL("image/png", big); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestDataURLAtLimit(t *testing.T) {
	exact := bytes.Repeat([]byte{1}, MaxBytes)
	if _, err := DataURL("image/png", exact); err != nil {
		t.Fatalf("payload at the limit should pass, got %v", err)
	}
}
