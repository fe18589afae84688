package controllers

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"sync"
	"time"

	"bmi-tracker/internal/bmi"
	"bmi-tracker/internal/chart"
	"bmi-tracker/internal/logger"
	"bmi-tracker/internal/models"
	"bmi-tracker/internal/services"

	"fyne.io/fyne/v2"
)

// Dialog titles and messages shown to the user
const (
	TitleInputError = "Input Error"
	TitleNoData     = "No Data"
	TitleError      = "Error"
	MessageNoData   = "No BMI history to display yet."
)

const operationTimeout = 30 * time.Second

// View is what the controller needs from the main window
type View interface {
	SetCalculateHandler(handler func(weight, height string))
	SetHistoryHandler(handler func())
	SetResult(text string)
	UpdateStatus(status string)
	SetRecordCount(n int)
	ShowError(title string, err error)
	ShowInfo(title, message string)
	ShowChart(img image.Image, size fyne.Size, export func(fyne.URIWriteCloser))
}

// MainController connects the BMI form to the services
type MainController struct {
	// Services
	bmiService   *services.BMIService
	chartService *services.ChartService

	// Models/Repositories
	session *models.SessionRepository

	// Views
	mainView View

	chartSize chart.Size
	logger    logger.Logger

	mu sync.Mutex
}

// NewMainController creates a new main controller
func NewMainController(
	bmiService *services.BMIService,
	chartService *services.ChartService,
	session *models.SessionRepository,
	chartSize chart.Size,
	log logger.Logger,
) *MainController {
	return &MainController{
		bmiService:   bmiService,
		chartService: chartService,
		session:      session,
		chartSize:    chartSize,
		logger:       log,
	}
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view View) {
	mc.mainView = view
	mc.setupViewEventHandlers()

	state := mc.session.GetState()
	view.SetRecordCount(state.RecordCount)
	view.UpdateStatus(state.LastAction)
}

// Calculate handles a press of the Calculate BMI button
func (mc *MainController) Calculate(weightText, heightText string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	rec, err := mc.bmiService.Compute(ctx, weightText, heightText)
	if err != nil {
		if bmi.IsInputError(err) {
			mc.mainView.UpdateStatus("Invalid input")
			mc.mainView.ShowError(TitleInputError, err)
			return
		}
		mc.handleError("Could not save BMI record", err)
		return
	}

	state := mc.session.RecordSaved(rec)
	mc.mainView.SetResult(rec.Summary())
	mc.mainView.SetRecordCount(state.RecordCount)
	mc.mainView.UpdateStatus(state.LastAction)
}

// ShowHistory handles a press of the Show BMI History Graph button
func (mc *MainController) ShowHistory() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	img, err := mc.chartService.Build(ctx, mc.chartSize)
	if err != nil {
		if errors.Is(err, models.ErrNoData) {
			mc.mainView.UpdateStatus(mc.session.SetAction("No history yet").LastAction)
			mc.mainView.ShowInfo(TitleNoData, MessageNoData)
			return
		}
		mc.handleError("Could not draw BMI history", err)
		return
	}

	if n, err := mc.bmiService.Count(ctx); err == nil {
		mc.mainView.SetRecordCount(mc.session.SyncCount(n).RecordCount)
	}

	size := fyne.NewSize(float32(mc.chartSize.Width), float32(mc.chartSize.Height))
	mc.mainView.ShowChart(img, size, mc.ExportChart)
	mc.mainView.UpdateStatus(mc.session.SetAction("History chart opened").LastAction)
}

// ExportChart writes the history chart as PNG to the file chosen in the
// chart window's save dialog.
func (mc *MainController) ExportChart(writer fyne.URIWriteCloser) {
	err := mc.exportTo(writer)
	if err != nil {
		if errors.Is(err, models.ErrNoData) {
			mc.discardExport(writer.URI())
			mc.mainView.ShowInfo(TitleNoData, MessageNoData)
			return
		}
		mc.handleError("Could not export chart", err)
		return
	}

	mc.mainView.UpdateStatus(mc.session.SetAction("Chart exported to " + writer.URI().Name()).LastAction)
}

func (mc *MainController) exportTo(w io.WriteCloser) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close export file: %w", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	return mc.chartService.Export(ctx, w, mc.chartSize)
}

// discardExport removes the empty file the save dialog created when there was
// nothing to export.
func (mc *MainController) discardExport(uri fyne.URI) {
	if uri == nil || uri.Scheme() != "file" {
		return
	}
	if err := os.Remove(uri.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		mc.logger.Warning("MainController", "could not remove empty export file", map[string]interface{}{
			"path":  uri.Path(),
			"error": err.Error(),
		})
	}
}

// setupViewEventHandlers connects view callbacks to controller methods
func (mc *MainController) setupViewEventHandlers() {
	if mc.mainView == nil {
		return
	}

	mc.mainView.SetCalculateHandler(mc.Calculate)
	mc.mainView.SetHistoryHandler(mc.ShowHistory)
}

// handleError logs unexpected failures and reports them without exiting
func (mc *MainController) handleError(title string, err error) {
	mc.logger.Error("MainController", err, map[string]interface{}{
		"action": title,
	})

	mc.mainView.UpdateStatus(mc.session.SetAction(title).LastAction)
	mc.mainView.ShowError(TitleError, fmt.Errorf("%s: %w", title, err))
}

// Shutdown releases controller state when the application closes
func (mc *MainController) Shutdown() error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.logger.Debug("MainController", "controller shut down", map[string]interface{}{
		"records": mc.session.GetState().RecordCount,
	})
	return nil
}
