package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	today := time.Now().Format("2006-01-02")

	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"serial number", float64(44911), "2022-12-16"},
		{"serial epoch", float64(0), "1899-12-30"},
		{"serial as int", 44911, "2022-12-16"},
		{"serial as numeric text", "44911", "2022-12-16"},
		{"slash day month year", "31/01/2024", "2024-01-31"},
		{"slash single digits", "5/3/2023", "2023-03-05"},
		{"slash impossible date", "32/13/2023", today},
		{"slash wrong component order", "13/31/2024", today},
		{"iso passes through", "2024-05-05", "2024-05-05"},
		{"iso with time", "2024-05-05 14:30:00", "2024-05-05"},
		{"empty cell", "", today},
		{"missing cell", nil, today},
		{"garbage", "not a date", today},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.raw))
		})
	}
}

func TestNormalizeDateIdempotent(t *testing.T) {
	once := NormalizeDate("16/12/2022")
	assert.Equal(t, once, NormalizeDate(once))
}
