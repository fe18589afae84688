package services

import (
	"errors"
	"image"
	"io"

	"bmi-tracker/internal/chart"
	"bmi-tracker/internal/models"
)

type memoryStore struct {
	records   []models.Record
	appendErr error
	readErr   error
}

func (m *memoryStore) Append(rec models.Record) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *memoryStore) ReadAll() ([]models.Record, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	if len(m.records) == 0 {
		return nil, models.ErrNoData
	}
	out := make([]models.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

type recordingRenderer struct {
	renders  int
	encodes  int
	lastBars int
	err      error
}

func (r *recordingRenderer) Render(l chart.Layout) (image.Image, error) {
	r.renders++
	r.lastBars = len(l.Bars)
	if r.err != nil {
		return nil, r.err
	}
	return image.NewRGBA(image.Rect(0, 0, l.Size.Width, l.Size.Height)), nil
}

func (r *recordingRenderer) EncodePNG(l chart.Layout, w io.Writer) error {
	r.encodes++
	r.lastBars = len(l.Bars)
	if r.err != nil {
		return r.err
	}
	_, err := w.Write([]byte("png"))
	return err
}

var errDisk = errors.New("disk full")
