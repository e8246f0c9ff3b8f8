package machine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeString(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		installDate string
		want        string
	}{
		{"one year", "2024-01-01", "1Y 0M"},
		{"years and months", "2022-06-15", "2Y 6M"},
		{"fresh install", "2024-12-20", "0Y 0M"},
		{"empty date", "", "-"},
		{"unparseable date", "15/06/2022", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeString(tt.installDate, now))
		})
	}
}
