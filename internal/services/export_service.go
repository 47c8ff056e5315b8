package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/terraincognita07/chemocompanion/internal/models"
)

const (
	exportDateLayout = "2006-01-02"
	exportTimeLayout = "15:04"
)

var ExportCSVHeaders = []string{
	"Date",
	"Time",
	"Symptom",
	"Category",
	"Severity",
	"Notes",
}

type ExportLogReader interface {
	FetchLogsForOptionalRange(ctx context.Context, from *time.Time, to *time.Time) ([]models.SymptomLog, error)
}

type ExportSessionReader interface {
	ListSessions(ctx context.Context) ([]models.Session, error)
}

type ExportChecklistReader interface {
	ChecklistItemsFor(ctx context.Context, sessionID *string) ([]models.ChecklistItem, error)
}

type ExportService struct {
	logs      ExportLogReader
	sessions  ExportSessionReader
	checklist ExportChecklistReader
}

type ExportSummary struct {
	TotalEntries int
	HasData      bool
	DateFrom     string
	DateTo       string
}

type ExportSymptomEntry struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	SymptomType string `json:"symptom_type"`
	Category    string `json:"category"`
	Severity    int    `json:"severity"`
	Notes       string `json:"notes"`
}

type ExportChecklistEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"is_completed"`
	Notes       string `json:"notes"`
}

type ExportSessionEntry struct {
	ID        string                 `json:"id"`
	Date      string                 `json:"date"`
	Location  string                 `json:"location"`
	Notes     string                 `json:"notes"`
	Checklist []ExportChecklistEntry `json:"checklist"`
}

func NewExportService(logs ExportLogReader, sessions ExportSessionReader, checklist ExportChecklistReader) *ExportService {
	return &ExportService{
		logs:      logs,
		sessions:  sessions,
		checklist: checklist,
	}
}

func (service *ExportService) BuildSummary(ctx context.Context, from *time.Time, to *time.Time, location *time.Location) (ExportSummary, error) {
	logs, err := service.logs.FetchLogsForOptionalRange(ctx, from, to)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(logs) == 0 {
		return ExportSummary{}, nil
	}

	first := logs[0].Date
	last := logs[0].Date
	for _, logEntry := range logs[1:] {
		if logEntry.Date.Before(first) {
			first = logEntry.Date
		}
		if logEntry.Date.After(last) {
			last = logEntry.Date
		}
	}

	return ExportSummary{
		TotalEntries: len(logs),
		HasData:      true,
		DateFrom:     DateAtLocation(first, location).Format(exportDateLayout),
		DateTo:       DateAtLocation(last, location).Format(exportDateLayout),
	}, nil
}

func (service *ExportService) BuildSymptomEntries(ctx context.Context, from *time.Time, to *time.Time, location *time.Location) ([]ExportSymptomEntry, error) {
	if location == nil {
		location = time.Local
	}
	logs, err := service.logs.FetchLogsForOptionalRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	entries := make([]ExportSymptomEntry, 0, len(logs))
	for _, logEntry := range logs {
		category, _ := models.CategoryForSymptom(logEntry.SymptomType)
		local := logEntry.Date.In(location)
		entries = append(entries, ExportSymptomEntry{
			ID:          logEntry.ID,
			Date:        local.Format(exportDateLayout),
			Time:        local.Format(exportTimeLayout),
			SymptomType: logEntry.SymptomType,
			Category:    category,
			Severity:    logEntry.Severity,
			Notes:       logEntry.Notes,
		})
	}
	return entries, nil
}

func (service *ExportService) SymptomsCSV(ctx context.Context, writer io.Writer, from *time.Time, to *time.Time, location *time.Location) error {
	entries, err := service.BuildSymptomEntries(ctx, from, to, location)
	if err != nil {
		return err
	}

	csvWriter := csv.NewWriter(writer)
	if err := csvWriter.Write(ExportCSVHeaders); err != nil {
		return err
	}
	for _, entry := range entries {
		record := []string{
			entry.Date,
			entry.Time,
			entry.SymptomType,
			entry.Category,
			strconv.Itoa(entry.Severity),
			entry.Notes,
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func (service *ExportService) SymptomsJSON(ctx context.Context, writer io.Writer, from *time.Time, to *time.Time, location *time.Location) error {
	entries, err := service.BuildSymptomEntries(ctx, from, to, location)
	if err != nil {
		return err
	}
	return writeExportJSON(writer, entries)
}

// BuildSessionEntries nests each session's checklist under it.
func (service *ExportService) BuildSessionEntries(ctx context.Context, location *time.Location) ([]ExportSessionEntry, error) {
	if location == nil {
		location = time.Local
	}
	sessions, err := service.sessions.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	items, err := service.checklist.ChecklistItemsFor(ctx, nil)
	if err != nil {
		return nil, err
	}

	entries := make([]ExportSessionEntry, 0, len(sessions))
	for _, session := range sessions {
		checklist := make([]ExportChecklistEntry, 0)
		for _, item := range items {
			if !item.BelongsTo(session.ID) {
				continue
			}
			checklist = append(checklist, ExportChecklistEntry{
				ID:          item.ID,
				Title:       item.Title,
				IsCompleted: item.IsCompleted,
				Notes:       item.Notes,
			})
		}
		entries = append(entries, ExportSessionEntry{
			ID:        session.ID,
			Date:      session.Date.In(location).Format(time.RFC3339),
			Location:  session.Location,
			Notes:     session.Notes,
			Checklist: checklist,
		})
	}
	return entries, nil
}

func (service *ExportService) SessionsJSON(ctx context.Context, writer io.Writer, location *time.Location) error {
	entries, err := service.BuildSessionEntries(ctx, location)
	if err != nil {
		return err
	}
	return writeExportJSON(writer, entries)
}

func writeExportJSON(writer io.Writer, value any) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
