package services

import (
	"strings"
	"time"
)

type TimeFrame string

const (
	TimeFrameWeek        TimeFrame = "week"
	TimeFrameMonth       TimeFrame = "month"
	TimeFrameThreeMonths TimeFrame = "three_months"
	TimeFrameYear        TimeFrame = "year"
)

func TimeFrames() []TimeFrame {
	return []TimeFrame{TimeFrameWeek, TimeFrameMonth, TimeFrameThreeMonths, TimeFrameYear}
}

func ParseTimeFrame(raw string) (TimeFrame, error) {
	switch TimeFrame(strings.ToLower(strings.TrimSpace(raw))) {
	case "", TimeFrameWeek:
		return TimeFrameWeek, nil
	case TimeFrameMonth:
		return TimeFrameMonth, nil
	case TimeFrameThreeMonths, "3m", "3months":
		return TimeFrameThreeMonths, nil
	case TimeFrameYear:
		return TimeFrameYear, nil
	default:
		return "", ErrInvalidTimeFrame
	}
}

func (frame TimeFrame) Days() int {
	switch frame {
	case TimeFrameMonth:
		return 30
	case TimeFrameThreeMonths:
		return 90
	case TimeFrameYear:
		return 365
	default:
		return 7
	}
}

// Window returns [now - Days, now].
func (frame TimeFrame) Window(now time.Time) (time.Time, time.Time) {
	return now.AddDate(0, 0, -frame.Days()), now
}
