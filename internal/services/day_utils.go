package services

import "time"

// DateAtLocation returns local midnight of the calendar day containing value.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.Local
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayRange returns the half-open [start, end) bounds of value's local day.
func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// MonthRange returns the half-open bounds of value's local calendar month.
func MonthRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	if location == nil {
		location = time.Local
	}
	localized := value.In(location)
	start := time.Date(localized.Year(), localized.Month(), 1, 0, 0, 0, 0, location)
	return start, start.AddDate(0, 1, 0)
}

func dayKey(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format("2006-01-02")
}
