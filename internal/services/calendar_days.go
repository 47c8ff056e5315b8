package services

import (
	"context"
	"time"

	"github.com/terraincognita07/chemocompanion/internal/models"
)

// CalendarDayState is one cell of a Sunday-first month grid.
type CalendarDayState struct {
	Date         time.Time
	DateString   string
	Day          int
	InMonth      bool
	IsToday      bool
	SessionCount int
	SessionIDs   []string
}

func (state CalendarDayState) HasSession() bool {
	return state.SessionCount > 0
}

// BuildCalendarDayStates lays out the weeks covering monthStart's month and
// marks the days that carry sessions.
func BuildCalendarDayStates(monthStart time.Time, sessions []models.Session, now time.Time, location *time.Location) []CalendarDayState {
	monthStart, _ = MonthRange(monthStart, location)
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, 6-int(monthEnd.Weekday()))

	sessionsByDay := make(map[string][]string)
	for _, session := range sessions {
		key := dayKey(session.Date, location)
		sessionsByDay[key] = append(sessionsByDay[key], session.ID)
	}

	todayKey := dayKey(now, location)

	days := make([]CalendarDayState, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		ids := sessionsByDay[key]
		days = append(days, CalendarDayState{
			Date:         day,
			DateString:   key,
			Day:          day.Day(),
			InMonth:      day.Month() == monthStart.Month(),
			IsToday:      key == todayKey,
			SessionCount: len(ids),
			SessionIDs:   ids,
		})
	}

	return days
}

// SessionCalendar builds the month grid for month from stored sessions. The
// grid spills into neighbouring months, so sessions on those days count too.
func (service *ScheduleService) SessionCalendar(ctx context.Context, month time.Time, now time.Time, location *time.Location) ([]CalendarDayState, error) {
	monthStart, monthEnd := MonthRange(month, location)
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	lastDay := monthEnd.AddDate(0, 0, -1)
	gridEnd := lastDay.AddDate(0, 0, 7-int(lastDay.Weekday()))

	sessions, err := service.sessions.ListInRange(ctx, gridStart, gridEnd)
	if err != nil {
		return nil, storageFailure("list sessions for calendar", err)
	}
	return BuildCalendarDayStates(monthStart, sessions, now, location), nil
}
