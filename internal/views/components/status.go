package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays the last action and the stored record count
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	countLabel  *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.statusLabel.Truncation = fyne.TextTruncateEllipsis
	sb.countLabel = widget.NewLabel(FormatRecordCount(0))
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewBorder(
		nil, nil, nil,
		sb.countLabel,
		sb.statusLabel,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	fyne.Do(func() {
		sb.statusLabel.SetText(status)
	})
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetRecordCount updates the stored record counter
func (sb *StatusBar) SetRecordCount(n int) {
	fyne.Do(func() {
		sb.countLabel.SetText(FormatRecordCount(n))
	})
}

// GetRecordCount returns the counter text
func (sb *StatusBar) GetRecordCount() string {
	return sb.countLabel.Text
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

// FormatRecordCount renders the counter text, e.g. "1 record", "3 records".
func FormatRecordCount(n int) string {
	if n == 1 {
		return "1 record"
	}
	return fmt.Sprintf("%d records", n)
}
