package timezone

import (
	"time"

	"gorm.io/datatypes"
)

const DefaultTimezone = "UTC"

// DateLayout is the format of every date field posted by the forms.
const DateLayout = "2006-01-02"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// ParseDate reads a YYYY-MM-DD form value as a calendar date. The result is
// UTC midnight so the driver never shifts the stored DATE.
func ParseDate(value string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// Today is the current calendar date in tz, formatted for a date input.
func Today(tz string, now time.Time) string {
	return now.In(Location(tz)).Format(DateLayout)
}

func FormatDate(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
