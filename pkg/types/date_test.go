package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOfIgnoresClockAndZone(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	morning := time.Date(2024, time.June, 1, 7, 30, 0, 0, loc)
	night := time.Date(2024, time.June, 1, 23, 59, 59, 0, loc)

	if DateOf(morning) != DateOf(night) {
		t.Fatalf("expected same civil day, got %s vs %s", DateOf(morning), DateOf(night))
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2024, time.May, 31)
	b := NewDate(2024, time.June, 1)

	if !a.Before(b) {
		t.Fatalf("expected %s before %s", a, b)
	}
	if !b.After(a) {
		t.Fatalf("expected %s after %s", b, a)
	}
	if a.Before(a) || a.After(a) {
		t.Fatal("a date must not order before or after itself")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.June, 1)

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2024-06-01"` {
		t.Fatalf("unexpected encoding %s", raw)
	}

	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Fatalf("round trip mismatch: %s vs %s", back, d)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("01/06/2024"); err == nil {
		t.Fatal("expected error for non ISO date")
	}
	if _, err := ParseDate(""); err == nil {
		t.Fatal("expected error for empty date")
	}
}
