package timezone_test

import (
	"tavolo/shared/constant"
	"tavolo/shared/timezone"
	"testing"
	"time"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	if now.Location() != timezone.GetLocation() {
		t.Errorf("expected location %v, got %v", timezone.GetLocation(), now.Location())
	}

	if time.Since(now) > time.Second {
		t.Errorf("expected Now to be close to wall clock, got %v", now)
	}
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	if today.Hour() != 0 || today.Minute() != 0 || today.Second() != 0 || today.Nanosecond() != 0 {
		t.Errorf("expected midnight, got %v", today)
	}

	now := timezone.Now()
	if today.Year() != now.Year() || today.Month() != now.Month() || today.Day() != now.Day() {
		t.Errorf("expected same calendar day as Now, got %v vs %v", today, now)
	}
}

func TestParse(t *testing.T) {
	parsed, err := timezone.Parse(constant.DateFormat, "2024-06-01")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if parsed.Year() != 2024 || parsed.Month() != time.June || parsed.Day() != 1 {
		t.Errorf("expected 2024-06-01, got %v", parsed)
	}

	if parsed.Location() != timezone.GetLocation() {
		t.Errorf("expected location %v, got %v", timezone.GetLocation(), parsed.Location())
	}

	if _, err := timezone.Parse(constant.DateFormat, "not-a-date"); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestFormat(t *testing.T) {
	moment := time.Date(2024, 6, 1, 19, 30, 0, 0, timezone.GetLocation())

	if got := timezone.Format(moment, constant.DateFormat); got != "2024-06-01" {
		t.Errorf("expected 2024-06-01, got %s", got)
	}

	if got := timezone.Format(moment, constant.TimeOfDayFormat); got != "19:30" {
		t.Errorf("expected 19:30, got %s", got)
	}
}
