package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"bmi-tracker/internal/config"
	"bmi-tracker/internal/controllers"
	"bmi-tracker/internal/logger"
	"bmi-tracker/internal/models"
	"bmi-tracker/internal/services"
	"bmi-tracker/internal/shutdown"
	"bmi-tracker/internal/storage"
	"bmi-tracker/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "BMI Calculator (Advanced)"
	AppID      = "com.bmitracker.desktop"
	AppVersion = "1.0.0"
)

// Application owns the window, the services and the shutdown sequence
type Application struct {
	// Core components
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	config  config.Config

	// MVC Components
	controller *controllers.MainController
	view       *views.MainView

	// Services
	bmiService   *services.BMIService
	chartService *services.ChartService

	// Models/Repositories
	store   *storage.CSVStore
	session *models.SessionRepository

	// Lifecycle management
	shutdown *shutdown.Manager
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewApplication creates and wires the application
func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*Application, error) {
	store, err := storage.NewCSVStore(cfg.HistoryFile, log)
	if err != nil {
		return nil, fmt.Errorf("history store initialization failed: %w", err)
	}

	shutdownMgr := shutdown.NewManager(log)
	shutdownMgr.Register("history store", store.Close)

	bmiService := services.NewBMIService(store, log)
	chartService := services.NewChartService(bmiService, services.OpenCVRenderer{}, log)

	existing, err := bmiService.Count(ctx)
	if err != nil {
		// An unreadable history must not block new calculations.
		log.Warning("Application", "history could not be read", map[string]interface{}{
			"path":  cfg.HistoryFile,
			"error": err.Error(),
		})
	}
	session := models.NewSessionRepository(existing)

	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.SetFixedSize(!cfg.Window.Resizable)
	window.CenterOnScreen()
	window.SetMaster()

	mainView := views.NewMainView(window)
	mainController := controllers.NewMainController(bmiService, chartService, session, cfg.ChartSize(), log)
	mainController.SetMainView(mainView)
	shutdownMgr.Register("controller", mainController.Shutdown)
	shutdownMgr.Register("chart window", func() error {
		mainView.CloseChart()
		return nil
	})

	application := &Application{
		fyneApp:      fyneApp,
		window:       window,
		logger:       log,
		config:       cfg,
		controller:   mainController,
		view:         mainView,
		bmiService:   bmiService,
		chartService: chartService,
		store:        store,
		session:      session,
		shutdown:     shutdownMgr,
	}

	application.setupWindowEvents()

	log.Info("Application", "application initialized", map[string]interface{}{
		"version":      AppVersion,
		"history_file": cfg.HistoryFile,
		"records":      existing,
		"go_version":   runtime.Version(),
	})

	return application, nil
}

// Run shows the window and blocks until the Fyne event loop exits
func (a *Application) Run(ctx context.Context) error {
	a.logger.Info("Application", "starting UI", nil)

	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	go func() {
		select {
		case <-ctx.Done():
			a.logger.Info("Application", "context cancelled, initiating shutdown", nil)
			a.shutdown.Shutdown()
			fyne.Do(a.fyneApp.Quit)
		case <-a.shutdown.Done():
		}
	}()

	a.view.Show()
	a.fyneApp.Run()

	// Covers quitting through the OS menu, which skips the close intercept.
	a.shutdown.Shutdown()
	return nil
}

// setupWindowEvents routes window closing through the shutdown manager
func (a *Application) setupWindowEvents() {
	a.window.SetOnClosed(func() {
		a.logger.Info("Application", "window closed, performing cleanup", nil)
		a.shutdown.Shutdown()
	})
}
