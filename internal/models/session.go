package models

import (
	"sync"
	"time"
)

// SessionState tracks what the main window shows about the current session
type SessionState struct {
	RecordCount int
	LastRecord  *Record
	LastAction  string
	UpdatedAt   time.Time
}

// SessionRepository holds the in-memory session state shared by the
// controller and the status bar.
type SessionRepository struct {
	mu    sync.RWMutex
	state SessionState
}

// NewSessionRepository creates a session seeded with the number of records
// already present in the history file.
func NewSessionRepository(existing int) *SessionRepository {
	return &SessionRepository{
		state: SessionState{
			RecordCount: existing,
			LastAction:  "Ready",
			UpdatedAt:   time.Now(),
		},
	}
}

// GetState returns a copy of the current state
func (sr *SessionRepository) GetState() SessionState {
	sr.mu.RLock()
	defer sr.mu.RUnlock()
	return sr.state
}

// RecordSaved notes a record that was appended to the history file.
func (sr *SessionRepository) RecordSaved(rec Record) SessionState {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	saved := rec
	sr.state.RecordCount++
	sr.state.LastRecord = &saved
	sr.state.LastAction = "Saved " + rec.Summary()
	sr.state.UpdatedAt = time.Now()
	return sr.state
}

// SetAction updates the last action text
func (sr *SessionRepository) SetAction(action string) SessionState {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	sr.state.LastAction = action
	sr.state.UpdatedAt = time.Now()
	return sr.state
}

// SyncCount replaces the record count after a full history read.
func (sr *SessionRepository) SyncCount(count int) SessionState {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	sr.state.RecordCount = count
	sr.state.UpdatedAt = time.Now()
	return sr.state
}
