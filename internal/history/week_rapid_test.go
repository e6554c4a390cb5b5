package history

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

func genTime() *rapid.Generator[time.Time] {
	return rapid.Custom(func(t *rapid.T) time.Time {
		base := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
		seconds := rapid.Int64Range(0, 60*365*24*3600).Draw(t, "seconds")
		return base.Add(time.Duration(seconds) * time.Second)
	})
}

func TestRapidWeekStart_Determinism(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		when := genTime().Draw(t, "when")
		start := WeekStart(when)

		if start.Weekday() != time.Monday {
			t.Fatalf("WeekStart(%v) = %v, not a Monday", when, start)
		}
		if h, m, s := start.Clock(); h != 0 || m != 0 || s != 0 {
			t.Fatalf("WeekStart(%v) = %v, not midnight", when, start)
		}
		if start.Location() != time.UTC {
			t.Fatalf("WeekStart(%v) = %v, not UTC", when, start)
		}
		if start.After(when) {
			t.Fatalf("WeekStart(%v) = %v is after the input", when, start)
		}
		if !start.After(when.Add(-7 * 24 * time.Hour)) {
			t.Fatalf("WeekStart(%v) = %v is more than a week before the input", when, start)
		}
	})
}

func TestRapidWeekStart_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		when := genTime().Draw(t, "when")
		start := WeekStart(when)
		if again := WeekStart(start); !again.Equal(start) {
			t.Fatalf("WeekStart(WeekStart(%v)) = %v, expected fixed point %v", when, again, start)
		}
	})
}
