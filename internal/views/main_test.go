package views

import (
	"errors"
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainViewForwardsFormEvents(t *testing.T) {
	a := test.NewApp()
	w := a.NewWindow("BMI")
	defer w.Close()

	view := NewMainView(w)

	var got [2]string
	view.SetCalculateHandler(func(weight, height string) { got = [2]string{weight, height} })
	history := 0
	view.SetHistoryHandler(func() { history++ })

	w.Resize(fyne.NewSize(350, 250))
	test.Type(findEntry(t, w, 0), "70")
	test.Type(findEntry(t, w, 1), "1.75")
	test.Tap(findButton(t, w, "Calculate BMI"))
	test.Tap(findButton(t, w, "Show BMI History Graph"))

	assert.Equal(t, [2]string{"70", "1.75"}, got)
	assert.Equal(t, 1, history)
}

func TestMainViewStateUpdates(t *testing.T) {
	a := test.NewApp()
	w := a.NewWindow("BMI")
	defer w.Close()

	view := NewMainView(w)
	view.SetResult("BMI: 22.86 (Normal weight)")
	view.UpdateStatus("Saved")
	view.SetRecordCount(2)

	assert.Equal(t, "BMI: 22.86 (Normal weight)", view.form.GetResult())
	assert.Equal(t, "Saved", view.statusBar.GetStatus())
	assert.Equal(t, "2 records", view.statusBar.GetRecordCount())
	assert.Nil(t, view.chartWindow)
}

func TestMainViewChartWindowLifecycle(t *testing.T) {
	a := test.NewApp()
	w := a.NewWindow("BMI")
	defer w.Close()

	view := NewMainView(w)
	view.ShowChart(image.NewRGBA(image.Rect(0, 0, 40, 30)), fyne.NewSize(40, 30), nil)
	require.NotNil(t, view.chartWindow)

	view.CloseChart()
	assert.Nil(t, view.chartWindow)

	// Closing again with no chart open is a no-op.
	view.CloseChart()
}

func TestMainViewDialogsDoNotPanic(t *testing.T) {
	a := test.NewApp()
	w := a.NewWindow("BMI")
	defer w.Close()
	w.Resize(fyne.NewSize(350, 250))

	view := NewMainView(w)
	view.ShowError("Input Error", errors.New("Weight must be between 10kg and 300kg."))
	view.ShowInfo("No Data", "No BMI history to display yet.")
}

// walk visits every canvas object below root, depth first.
func walk(root fyne.CanvasObject, visit func(fyne.CanvasObject)) {
	visit(root)
	if c, ok := root.(*fyne.Container); ok {
		for _, child := range c.Objects {
			walk(child, visit)
		}
	}
}

func findEntry(t *testing.T, w fyne.Window, index int) *widget.Entry {
	t.Helper()

	var entries []*widget.Entry
	walk(w.Content(), func(o fyne.CanvasObject) {
		if e, ok := o.(*widget.Entry); ok {
			entries = append(entries, e)
		}
	})
	require.Greater(t, len(entries), index)
	return entries[index]
}

func findButton(t *testing.T, w fyne.Window, text string) *widget.Button {
	t.Helper()

	var found *widget.Button
	walk(w.Content(), func(o fyne.CanvasObject) {
		if b, ok := o.(*widget.Button); ok && b.Text == text {
			found = b
		}
	})
	require.NotNil(t, found, "button %q", text)
	return found
}
