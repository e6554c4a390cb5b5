package history

import (
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "Monday maps to itself",
			input:    time.Date(2005, 4, 4, 10, 30, 0, 0, time.UTC),
			expected: time.Date(2005, 4, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Tuesday maps back to Monday",
			input:    time.Date(2005, 4, 5, 23, 59, 59, 0, time.UTC),
			expected: time.Date(2005, 4, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Sunday maps back six days",
			input:    time.Date(2005, 4, 10, 0, 0, 1, 0, time.UTC),
			expected: time.Date(2005, 4, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Monday midnight is a fixed point",
			input:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "year boundary week",
			input:    time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "non-UTC input is normalized",
			input:    time.Date(2005, 4, 4, 1, 0, 0, 0, time.FixedZone("CEST", 2*3600)),
			expected: time.Date(2005, 3, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WeekStart(tt.input)
			if !result.Equal(tt.expected) {
				t.Errorf("WeekStart(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWeekEnd(t *testing.T) {
	start := time.Date(2005, 4, 4, 0, 0, 0, 0, time.UTC)
	expected := time.Date(2005, 4, 10, 23, 59, 59, 0, time.UTC)

	result := WeekEnd(start)
	if !result.Equal(expected) {
		t.Errorf("WeekEnd(%v) = %v, expected %v", start, result, expected)
	}
}
