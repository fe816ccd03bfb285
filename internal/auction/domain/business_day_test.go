package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFirstBusinessDay(t *testing.T) {
	// 2024-03-18 is a Monday
	monday := time.Date(2024, time.March, 18, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday stays", monday, monday},
		{"wednesday stays", monday.AddDate(0, 0, 2), monday.AddDate(0, 0, 2)},
		{"friday stays", monday.AddDate(0, 0, 4), monday.AddDate(0, 0, 4)},
		{"saturday moves two days", monday.AddDate(0, 0, 5), monday.AddDate(0, 0, 7)},
		{"sunday moves one day", monday.AddDate(0, 0, 6), monday.AddDate(0, 0, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FirstBusinessDay(tt.in)

			assert.Equal(t, tt.want, got)
			assert.NotEqual(t, time.Saturday, got.Weekday())
			assert.NotEqual(t, time.Sunday, got.Weekday())
		})
	}
}
