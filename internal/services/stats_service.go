package services

import (
	"context"
	"strings"
	"time"

	"github.com/terraincognita07/chemocompanion/internal/models"
)

type StatsLogReader interface {
	FetchAllLogs(ctx context.Context) ([]models.SymptomLog, error)
}

type StatsService struct {
	logs StatsLogReader
}

// AnalyticsReport backs the analytics view. Window-bound series use
// [From, To]; MostCommonType and AverageSeverity cover every log.
type AnalyticsReport struct {
	TimeFrame       TimeFrame
	From            time.Time
	To              time.Time
	DailyAverages   []DailySeverity
	Frequencies     []SymptomFrequency
	Detail          []SeverityPoint
	DetailType      string
	MostCommonType  string
	HasMostCommon   bool
	AverageSeverity float64
	TotalLogs       int
}

func NewStatsService(logs StatsLogReader) *StatsService {
	return &StatsService{logs: logs}
}

// BuildReport computes the analytics for frame ending at now. A blank
// symptomType leaves the severity detail series unfiltered.
func (service *StatsService) BuildReport(ctx context.Context, frame TimeFrame, symptomType string, now time.Time, location *time.Location) (AnalyticsReport, error) {
	logs, err := service.logs.FetchAllLogs(ctx)
	if err != nil {
		return AnalyticsReport{}, err
	}
	return BuildAnalyticsReport(logs, frame, symptomType, now, location), nil
}

func BuildAnalyticsReport(logs []models.SymptomLog, frame TimeFrame, symptomType string, now time.Time, location *time.Location) AnalyticsReport {
	from, to := frame.Window(now)
	symptomType = strings.TrimSpace(symptomType)
	if symptomType != "" {
		symptomType = models.CatalogSymptomName(symptomType)
	}

	mostCommon, hasMostCommon := MostCommonType(logs)
	return AnalyticsReport{
		TimeFrame:       frame,
		From:            from,
		To:              to,
		DailyAverages:   DailyAverageSeverity(logs, from, to, location),
		Frequencies:     FrequencyByType(FilterRange(logs, from, to)),
		Detail:          SeveritySeries(logs, from, to, symptomType),
		DetailType:      symptomType,
		MostCommonType:  mostCommon,
		HasMostCommon:   hasMostCommon,
		AverageSeverity: AverageSeverity(logs),
		TotalLogs:       len(logs),
	}
}
