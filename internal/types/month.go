package types

import (
	"fmt"
	"strings"
	"time"
)

// YearMonth is a month in a specific year. It is used as the bucket key for
// monthly trend aggregation.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the YearMonth in which a date occurs.
func YearMonthOf(d Date) YearMonth {
	year, month, _ := time.Time(d).Date()
	return YearMonth{Year: year, Month: month}
}

// String returns the month formatted as YYYY-MM.
func (m YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// MarshalJSON implements the json.Marshaler interface.
func (m YearMonth) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface. The month is
// expected as "YYYY-MM".
func (m *YearMonth) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	t, err := time.Parse("2006-01", value)
	if err != nil {
		return err
	}

	m.Year = t.Year()
	m.Month = t.Month()
	return nil
}

// First returns the first date of the month.
func (m YearMonth) First() Date {
	return NewDate(m.Year, m.Month, 1)
}

// Before reports whether the month m is before n.
func (m YearMonth) Before(n YearMonth) bool {
	if m.Year != n.Year {
		return m.Year < n.Year
	}

	return m.Month < n.Month
}
