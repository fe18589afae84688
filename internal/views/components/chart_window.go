package components

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// ChartWindowTitle is shown in the history window's title bar
const ChartWindowTitle = "BMI History (Color-Coded by Category)"

// ChartView shows a rendered history chart with an export action
type ChartView struct {
	container    *fyne.Container
	chartImage   *canvas.Image
	exportButton *widget.Button
	closeButton  *widget.Button

	exportHandler func(fyne.URIWriteCloser)
	closeHandler  func()
}

// NewChartView creates the chart window content for img, shown at size.
func NewChartView(img image.Image, size fyne.Size) *ChartView {
	cv := &ChartView{}

	cv.chartImage = canvas.NewImageFromImage(img)
	cv.chartImage.FillMode = canvas.ImageFillContain
	cv.chartImage.ScaleMode = canvas.ImageScaleSmooth
	cv.chartImage.SetMinSize(size)

	cv.exportButton = widget.NewButton("Export PNG", nil)
	cv.closeButton = widget.NewButton("Close", func() {
		if cv.closeHandler != nil {
			cv.closeHandler()
		}
	})

	cv.container = container.NewBorder(
		nil,
		container.NewHBox(cv.exportButton, cv.closeButton),
		nil, nil,
		cv.chartImage,
	)

	return cv
}

// Attach binds the view to its window: export opens a save dialog on it
// and close closes it.
func (cv *ChartView) Attach(window fyne.Window) {
	cv.closeHandler = window.Close
	cv.exportButton.OnTapped = func() {
		save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, window)
				return
			}
			if writer == nil || cv.exportHandler == nil {
				return
			}
			cv.exportHandler(writer)
		}, window)
		save.SetFileName("bmi_history.png")
		save.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
		save.Show()
	}
}

// SetExportHandler sets the handler writing the PNG to the chosen file
func (cv *ChartView) SetExportHandler(handler func(fyne.URIWriteCloser)) {
	cv.exportHandler = handler
}

// Image returns the displayed chart
func (cv *ChartView) Image() image.Image {
	return cv.chartImage.Image
}

// GetContainer returns the chart view container
func (cv *ChartView) GetContainer() *fyne.Container {
	return cv.container
}
