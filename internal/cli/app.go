package cli

import (
	"time"

	"github.com/terraincognita07/chemocompanion/internal/config"
	"github.com/terraincognita07/chemocompanion/internal/db"
	"github.com/terraincognita07/chemocompanion/internal/services"
)

// App bundles the store and the services built on top of it for one command
// invocation.
type App struct {
	Config    config.Config
	Location  *time.Location
	Store     *db.Store
	Notifier  *services.NotificationService
	Schedule  *services.ScheduleService
	Checklist *services.ChecklistService
	Symptoms  *services.SymptomService
	Stats     *services.StatsService
	Export    *services.ExportService
}

func OpenApp(cfg config.Config) (*App, error) {
	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	repositories := db.NewRepositories(store.DB())
	notifier := services.NewNotificationService()
	store.AddListener(notifier)

	schedule := services.NewScheduleService(store, repositories.Sessions)
	checklist := services.NewChecklistService(store, repositories.ChecklistItems, repositories.Sessions)
	symptoms := services.NewSymptomService(store, repositories.SymptomLogs)

	return &App{
		Config:    cfg,
		Location:  cfg.Location(),
		Store:     store,
		Notifier:  notifier,
		Schedule:  schedule,
		Checklist: checklist,
		Symptoms:  symptoms,
		Stats:     services.NewStatsService(symptoms),
		Export:    services.NewExportService(symptoms, schedule, checklist),
	}, nil
}

func (app *App) Close() error {
	return app.Store.Close()
}
