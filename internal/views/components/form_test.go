package components

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputFormCalculatePassesEntryText(t *testing.T) {
	test.NewApp()

	form := NewInputForm()
	w := test.NewWindow(form.GetContainer())
	defer w.Close()

	var gotWeight, gotHeight string
	calls := 0
	form.SetCalculateHandler(func(weight, height string) {
		calls++
		gotWeight, gotHeight = weight, height
	})

	test.Type(form.weightEntry, "70")
	test.Type(form.heightEntry, "1.75")
	test.Tap(form.calculateButton)

	require.Equal(t, 1, calls)
	assert.Equal(t, "70", gotWeight)
	assert.Equal(t, "1.75", gotHeight)
}

func TestInputFormEnterInHeightSubmits(t *testing.T) {
	test.NewApp()

	form := NewInputForm()
	w := test.NewWindow(form.GetContainer())
	defer w.Close()

	calls := 0
	form.SetCalculateHandler(func(string, string) { calls++ })

	test.Type(form.weightEntry, "80")
	test.Type(form.heightEntry, "1.8")
	form.heightEntry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})

	assert.Equal(t, 1, calls)
}

func TestInputFormHistoryButton(t *testing.T) {
	test.NewApp()

	form := NewInputForm()
	w := test.NewWindow(form.GetContainer())
	defer w.Close()

	// no handler yet: tapping must not panic
	test.Tap(form.historyButton)

	calls := 0
	form.SetHistoryHandler(func() { calls++ })
	test.Tap(form.historyButton)
	assert.Equal(t, 1, calls)
}

func TestInputFormSetResult(t *testing.T) {
	test.NewApp()

	form := NewInputForm()
	form.SetResult("BMI: 22.86 (Normal weight)")
	assert.Equal(t, "BMI: 22.86 (Normal weight)", form.GetResult())
	assert.True(t, form.resultLabel.TextStyle.Bold)
}

func TestStatusBar(t *testing.T) {
	test.NewApp()

	sb := NewStatusBar()
	assert.Equal(t, "Ready", sb.GetStatus())
	assert.Equal(t, "0 records", sb.GetRecordCount())

	sb.SetStatus("Saved BMI: 22.86 (Normal weight)")
	sb.SetRecordCount(1)
	assert.Equal(t, "Saved BMI: 22.86 (Normal weight)", sb.GetStatus())
	assert.Equal(t, "1 record", sb.GetRecordCount())
}

func TestChartViewShowsImage(t *testing.T) {
	test.NewApp()

	img := image.NewRGBA(image.Rect(0, 0, 80, 50))
	cv := NewChartView(img, fyne.NewSize(80, 50))
	w := test.NewWindow(cv.GetContainer())
	defer w.Close()
	cv.Attach(w)

	assert.Equal(t, img, cv.Image())
	assert.NotNil(t, cv.exportButton.OnTapped)
}
