package views

import (
	"image"

	"bmi-tracker/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// MainView is the single BMI calculator window
type MainView struct {
	// UI Components
	window        fyne.Window
	mainContainer *fyne.Container
	form          *components.InputForm
	statusBar     *components.StatusBar
	chartWindow   fyne.Window

	// Event handlers - connected to controller
	calculateHandler func(weight, height string)
	historyHandler   func()
}

// NewMainView creates a new main view
func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()
	view.setupEventHandlers()

	return view
}

// initializeComponents creates all UI components
func (mv *MainView) initializeComponents() {
	mv.form = components.NewInputForm()
	mv.statusBar = components.NewStatusBar()
}

// buildLayout constructs the main layout
func (mv *MainView) buildLayout() {
	mv.mainContainer = container.NewBorder(
		nil,
		mv.statusBar.GetContainer(),
		nil,
		nil,
		container.NewPadded(mv.form.GetContainer()),
	)

	mv.window.SetContent(mv.mainContainer)
}

// setupEventHandlers connects internal component events
func (mv *MainView) setupEventHandlers() {
	mv.form.SetCalculateHandler(func(weight, height string) {
		if mv.calculateHandler != nil {
			mv.calculateHandler(weight, height)
		}
	})

	mv.form.SetHistoryHandler(func() {
		if mv.historyHandler != nil {
			mv.historyHandler()
		}
	})
}

// SetCalculateHandler sets the handler for calculate requests
func (mv *MainView) SetCalculateHandler(handler func(weight, height string)) {
	mv.calculateHandler = handler
}

// SetHistoryHandler sets the handler for history chart requests
func (mv *MainView) SetHistoryHandler(handler func()) {
	mv.historyHandler = handler
}

// SetResult updates the result label under the form
func (mv *MainView) SetResult(text string) {
	mv.form.SetResult(text)
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

// SetRecordCount updates the stored record counter
func (mv *MainView) SetRecordCount(n int) {
	mv.statusBar.SetRecordCount(n)
}

// ShowError displays a blocking error dialog with the given title
func (mv *MainView) ShowError(title string, err error) {
	fyne.Do(func() {
		content := container.NewHBox(
			widget.NewIcon(theme.ErrorIcon()),
			widget.NewLabel(err.Error()),
		)
		dialog.ShowCustom(title, "OK", content, mv.window)
	})
}

// ShowInfo displays an information dialog
func (mv *MainView) ShowInfo(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, mv.window)
	})
}

// ShowChart opens (or replaces the content of) the history chart window.
// export is invoked with the file chosen in the save dialog.
func (mv *MainView) ShowChart(img image.Image, size fyne.Size, export func(fyne.URIWriteCloser)) {
	fyne.Do(func() {
		if mv.chartWindow == nil {
			mv.chartWindow = fyne.CurrentApp().NewWindow(components.ChartWindowTitle)
			mv.chartWindow.SetOnClosed(func() {
				mv.chartWindow = nil
			})
		}

		chartView := components.NewChartView(img, size)
		chartView.SetExportHandler(export)
		chartView.Attach(mv.chartWindow)

		mv.chartWindow.SetContent(chartView.GetContainer())
		mv.chartWindow.Show()
		mv.chartWindow.RequestFocus()
	})
}

// CloseChart closes the chart window if it is open
func (mv *MainView) CloseChart() {
	fyne.Do(func() {
		if mv.chartWindow != nil {
			mv.chartWindow.Close()
		}
	})
}

// Show displays the view
func (mv *MainView) Show() {
	fyne.Do(func() {
		mv.window.Show()
	})
}
