package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"bmi-tracker/internal/chart"
	"bmi-tracker/internal/logger"
	"bmi-tracker/internal/models"
)

// Renderer rasterises a computed chart layout.
type Renderer interface {
	Render(l chart.Layout) (image.Image, error)
	EncodePNG(l chart.Layout, w io.Writer) error
}

// OpenCVRenderer draws charts with the chart package's OpenCV backend.
type OpenCVRenderer struct{}

func (OpenCVRenderer) Render(l chart.Layout) (image.Image, error) {
	return chart.Render(l)
}

func (OpenCVRenderer) EncodePNG(l chart.Layout, w io.Writer) error {
	return chart.EncodePNG(l, w)
}

// ChartService builds history charts from the stored records
type ChartService struct {
	history  *BMIService
	renderer Renderer
	logger   logger.Logger
}

// NewChartService creates a new chart service
func NewChartService(history *BMIService, renderer Renderer, log logger.Logger) *ChartService {
	return &ChartService{
		history:  history,
		renderer: renderer,
		logger:   log,
	}
}

// Build renders the full history. With no records it returns
// models.ErrNoData without touching the renderer.
func (cs *ChartService) Build(ctx context.Context, size chart.Size) (image.Image, error) {
	layout, err := cs.layout(ctx, size)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	img, err := cs.renderer.Render(layout)
	if err != nil {
		return nil, fmt.Errorf("chart rendering failed: %w", err)
	}

	cs.logger.Debug("ChartService", "chart rendered", map[string]interface{}{
		"bars":        len(layout.Bars),
		"width":       size.Width,
		"height":      size.Height,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return img, nil
}

// Export writes the full history chart to w as PNG.
func (cs *ChartService) Export(ctx context.Context, w io.Writer, size chart.Size) error {
	layout, err := cs.layout(ctx, size)
	if err != nil {
		return err
	}

	if err := cs.renderer.EncodePNG(layout, w); err != nil {
		return fmt.Errorf("chart export failed: %w", err)
	}

	cs.logger.Info("ChartService", "chart exported", map[string]interface{}{
		"bars": len(layout.Bars),
	})
	return nil
}

func (cs *ChartService) layout(ctx context.Context, size chart.Size) (chart.Layout, error) {
	records, err := cs.history.History(ctx)
	if err != nil {
		return chart.Layout{}, err
	}

	layout, err := chart.BuildLayout(records, size)
	if err != nil {
		if errors.Is(err, models.ErrNoData) {
			return chart.Layout{}, err
		}
		return chart.Layout{}, fmt.Errorf("chart layout failed: %w", err)
	}
	return layout, nil
}
