package services

import (
	"slices"
	"time"

	"github.com/terraincognita07/chemocompanion/internal/models"
)

// DailySeverity is the mean severity of one local calendar day.
type DailySeverity struct {
	Day     time.Time
	Average float64
	Count   int
}

type SymptomFrequency struct {
	SymptomType string
	Count       int
	TotalLogs   int
}

type SeverityPoint struct {
	Date        time.Time
	SymptomType string
	Severity    int
}

type DayGroup struct {
	Day  time.Time
	Logs []models.SymptomLog
}

// FilterRange keeps logs with from <= date <= to in input order.
func FilterRange(logs []models.SymptomLog, from time.Time, to time.Time) []models.SymptomLog {
	result := make([]models.SymptomLog, 0, len(logs))
	for _, entry := range logs {
		if entry.Date.Before(from) || entry.Date.After(to) {
			continue
		}
		result = append(result, entry)
	}
	return result
}

// DailyAverageSeverity buckets logs inside [from, to] by local day and
// averages each bucket. Days without logs are omitted.
func DailyAverageSeverity(logs []models.SymptomLog, from time.Time, to time.Time, location *time.Location) []DailySeverity {
	type bucket struct {
		day   time.Time
		total int
		count int
	}

	buckets := make(map[string]*bucket)
	for _, entry := range FilterRange(logs, from, to) {
		key := dayKey(entry.Date, location)
		current, ok := buckets[key]
		if !ok {
			current = &bucket{day: DateAtLocation(entry.Date, location)}
			buckets[key] = current
		}
		current.total += entry.Severity
		current.count++
	}

	result := make([]DailySeverity, 0, len(buckets))
	for _, current := range buckets {
		result = append(result, DailySeverity{
			Day:     current.day,
			Average: float64(current.total) / float64(current.count),
			Count:   current.count,
		})
	}
	slices.SortFunc(result, func(left DailySeverity, right DailySeverity) int {
		return left.Day.Compare(right.Day)
	})
	return result
}

// FrequencyByType counts logs per type, most frequent first. Equal counts
// keep the order in which each type first appears in logs.
func FrequencyByType(logs []models.SymptomLog) []SymptomFrequency {
	if len(logs) == 0 {
		return []SymptomFrequency{}
	}

	index := make(map[string]int)
	result := make([]SymptomFrequency, 0)
	for _, entry := range logs {
		position, ok := index[entry.SymptomType]
		if !ok {
			position = len(result)
			index[entry.SymptomType] = position
			result = append(result, SymptomFrequency{SymptomType: entry.SymptomType, TotalLogs: len(logs)})
		}
		result[position].Count++
	}

	slices.SortStableFunc(result, func(left SymptomFrequency, right SymptomFrequency) int {
		return right.Count - left.Count
	})
	return result
}

// MostCommonType reports false for empty input.
func MostCommonType(logs []models.SymptomLog) (string, bool) {
	frequencies := FrequencyByType(logs)
	if len(frequencies) == 0 {
		return "", false
	}
	return frequencies[0].SymptomType, true
}

// AverageSeverity returns 0 for empty input; callers that need to tell
// "no data" apart should check len(logs) first.
func AverageSeverity(logs []models.SymptomLog) float64 {
	if len(logs) == 0 {
		return 0
	}
	total := 0
	for _, entry := range logs {
		total += entry.Severity
	}
	return float64(total) / float64(len(logs))
}

// SeveritySeries lists per-log severities inside [from, to], earliest first.
// A blank symptomType keeps every type.
func SeveritySeries(logs []models.SymptomLog, from time.Time, to time.Time, symptomType string) []SeverityPoint {
	result := make([]SeverityPoint, 0)
	for _, entry := range FilterRange(logs, from, to) {
		if symptomType != "" && entry.SymptomType != symptomType {
			continue
		}
		result = append(result, SeverityPoint{
			Date:        entry.Date,
			SymptomType: entry.SymptomType,
			Severity:    entry.Severity,
		})
	}
	slices.SortStableFunc(result, func(left SeverityPoint, right SeverityPoint) int {
		return left.Date.Compare(right.Date)
	})
	return result
}

// GroupByDay buckets logs by local day, newest day first. Logs inside a day
// are newest first as well.
func GroupByDay(logs []models.SymptomLog, location *time.Location) []DayGroup {
	groups := make(map[string]*DayGroup)
	for _, entry := range logs {
		key := dayKey(entry.Date, location)
		group, ok := groups[key]
		if !ok {
			group = &DayGroup{Day: DateAtLocation(entry.Date, location)}
			groups[key] = group
		}
		group.Logs = append(group.Logs, entry)
	}

	result := make([]DayGroup, 0, len(groups))
	for _, group := range groups {
		slices.SortStableFunc(group.Logs, func(left models.SymptomLog, right models.SymptomLog) int {
			return right.Date.Compare(left.Date)
		})
		result = append(result, *group)
	}
	slices.SortFunc(result, func(left DayGroup, right DayGroup) int {
		return right.Day.Compare(left.Day)
	})
	return result
}
