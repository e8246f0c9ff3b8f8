package importer

import (
	"strconv"
	"strings"
	"time"
)

const canonicalDate = "2006-01-02"

// Days between the spreadsheet serial epoch (day 0 = 1899-12-30) and the Unix
// epoch.
const serialEpochOffsetDays = 25569

// NormalizeDate converts whatever a spreadsheet cell holds — a serial number,
// a D/M/Y slash string, an ISO string, or nothing — into a canonical
// YYYY-MM-DD string. It never fails: absent or unparseable input falls back
// to the current date, so a bad cell degrades the row instead of killing the
// import.
func NormalizeDate(raw any) string {
	switch v := raw.(type) {
	case nil:
		return today()
	case float64:
		return fromSerial(v)
	case int:
		return fromSerial(float64(v))
	case string:
		return normalizeDateString(v)
	default:
		return today()
	}
}

func normalizeDateString(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return today()
	}
	// Serial numbers survive the trip through a cell reader as numeric text.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSerial(serial)
	}
	if strings.Contains(s, "/") {
		if d, ok := fromSlash(s); ok {
			return d
		}
	}
	for _, layout := range []string{canonicalDate, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(canonicalDate)
		}
	}
	return today()
}

func fromSerial(serial float64) string {
	secs := int64((serial - serialEpochOffsetDays) * 86400)
	return time.Unix(secs, 0).UTC().Format(canonicalDate)
}

// fromSlash interprets a three-component slash date as day/month/year
// (European order) and validates it by reconstructing the calendar date:
// "32/13/2023" does not round-trip and is rejected rather than silently
// normalized into the next month.
func fromSlash(s string) (string, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return "", false
	}
	day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return "", false
	}
	return t.Format(canonicalDate), true
}

func today() string {
	return time.Now().Format(canonicalDate)
}
