package services

import (
	"context"
	"errors"
	"fmt"

	"bmi-tracker/internal/bmi"
	"bmi-tracker/internal/logger"
	"bmi-tracker/internal/models"
)

// HistoryStore is the append-only record log behind the services.
type HistoryStore interface {
	Append(rec models.Record) error
	ReadAll() ([]models.Record, error)
}

// BMIService validates form input, computes the BMI and records it
type BMIService struct {
	store  HistoryStore
	logger logger.Logger
}

// NewBMIService creates a new BMI service
func NewBMIService(store HistoryStore, log logger.Logger) *BMIService {
	return &BMIService{
		store:  store,
		logger: log,
	}
}

// Compute parses and validates the raw form values, then appends the
// resulting record. Invalid input returns a *bmi.InputError and nothing is
// stored. The returned record carries the unrounded BMI.
func (s *BMIService) Compute(ctx context.Context, weightText, heightText string) (models.Record, error) {
	select {
	case <-ctx.Done():
		return models.Record{}, ctx.Err()
	default:
	}

	weight, height, err := bmi.ParseMeasurement(weightText, heightText)
	if err != nil {
		s.logger.Debug("BMIService", "input rejected", map[string]interface{}{
			"weight": weightText,
			"height": heightText,
			"reason": err.Error(),
		})
		return models.Record{}, err
	}

	rec := models.NewRecord(weight, height)

	if err := s.store.Append(rec); err != nil {
		return rec, fmt.Errorf("failed to save BMI record: %w", err)
	}

	s.logger.Info("BMIService", "BMI computed", map[string]interface{}{
		"weight":   rec.Weight,
		"height":   rec.Height,
		"bmi":      rec.BMI,
		"category": rec.Category.String(),
	})

	return rec, nil
}

// History returns every stored record in chronological order, or
// models.ErrNoData when nothing has been saved yet.
func (s *BMIService) History(ctx context.Context) ([]models.Record, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	records, err := s.store.ReadAll()
	if err != nil {
		if errors.Is(err, models.ErrNoData) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load BMI history: %w", err)
	}
	return records, nil
}

// Count returns the number of stored records, zero for an empty history.
func (s *BMIService) Count(ctx context.Context) (int, error) {
	records, err := s.History(ctx)
	if errors.Is(err, models.ErrNoData) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
