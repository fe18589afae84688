package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// InputForm collects weight and height and shows the latest result
type InputForm struct {
	container       *fyne.Container
	weightEntry     *widget.Entry
	heightEntry     *widget.Entry
	calculateButton *widget.Button
	historyButton   *widget.Button
	resultLabel     *widget.Label

	// Event handlers
	calculateHandler func(weight, height string)
	historyHandler   func()
}

// NewInputForm creates the BMI input form
func NewInputForm() *InputForm {
	form := &InputForm{}
	form.createComponents()
	form.buildLayout()
	form.setupEventHandlers()
	return form
}

func (f *InputForm) createComponents() {
	f.weightEntry = widget.NewEntry()
	f.weightEntry.SetPlaceHolder("e.g. 70")

	f.heightEntry = widget.NewEntry()
	f.heightEntry.SetPlaceHolder("e.g. 1.75")

	f.calculateButton = widget.NewButton("Calculate BMI", nil)
	f.calculateButton.Importance = widget.HighImportance

	f.historyButton = widget.NewButton("Show BMI History Graph", nil)

	f.resultLabel = widget.NewLabel("")
	f.resultLabel.Alignment = fyne.TextAlignCenter
	f.resultLabel.TextStyle = fyne.TextStyle{Bold: true}
}

func (f *InputForm) buildLayout() {
	f.container = container.NewVBox(
		widget.NewLabel("Weight (kg):"),
		f.weightEntry,
		widget.NewLabel("Height (m):"),
		f.heightEntry,
		f.calculateButton,
		f.resultLabel,
		f.historyButton,
	)
}

func (f *InputForm) setupEventHandlers() {
	f.calculateButton.OnTapped = f.submit
	f.heightEntry.OnSubmitted = func(string) { f.submit() }

	f.historyButton.OnTapped = func() {
		if f.historyHandler != nil {
			f.historyHandler()
		}
	}
}

func (f *InputForm) submit() {
	if f.calculateHandler != nil {
		f.calculateHandler(f.weightEntry.Text, f.heightEntry.Text)
	}
}

// SetCalculateHandler sets the handler receiving the raw entry texts
func (f *InputForm) SetCalculateHandler(handler func(weight, height string)) {
	f.calculateHandler = handler
}

// SetHistoryHandler sets the handler for history chart requests
func (f *InputForm) SetHistoryHandler(handler func()) {
	f.historyHandler = handler
}

// SetResult replaces the result label text
func (f *InputForm) SetResult(text string) {
	fyne.Do(func() {
		f.resultLabel.SetText(text)
	})
}

// GetResult returns the result label text
func (f *InputForm) GetResult() string {
	return f.resultLabel.Text
}

// GetContainer returns the form container
func (f *InputForm) GetContainer() *fyne.Container {
	return f.container
}
