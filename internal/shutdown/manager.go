package shutdown

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"bmi-tracker/internal/logger"
)

const defaultStepTimeout = 10 * time.Second

// Step is one named cleanup action.
type Step struct {
	Name string
	Fn   func() error
}

type Manager struct {
	steps   []Step
	logger  logger.Logger
	timeout time.Duration
	mu      sync.Mutex
	done    chan struct{}
}

func NewManager(log logger.Logger) *Manager {
	return &Manager{
		logger:  log,
		timeout: defaultStepTimeout,
		done:    make(chan struct{}),
	}
}

// SetStepTimeout bounds how long a single step may block shutdown.
func (m *Manager) SetStepTimeout(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = d
}

// Register adds a cleanup step. Steps run in reverse registration order.
func (m *Manager) Register(name string, fn func() error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.steps = append(m.steps, Step{Name: name, Fn: fn})
}

// Listen triggers Shutdown on SIGINT or SIGTERM, then calls onSignal.
func (m *Manager) Listen(onSignal func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			m.logger.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.Shutdown()
			if onSignal != nil {
				onSignal()
			}
		case <-m.done:
		}
	}()
}

// Shutdown runs every registered step once. Later calls are no-ops.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	m.logger.Info("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"steps": len(m.steps),
	})

	for i := len(m.steps) - 1; i >= 0; i-- {
		step := m.steps[i]

		errCh := make(chan error, 1)
		go func() {
			errCh <- step.Fn()
		}()

		select {
		case err := <-errCh:
			if err != nil {
				m.logger.Error("ShutdownManager", err, map[string]interface{}{
					"step": step.Name,
				})
			}
		case <-time.After(m.timeout):
			m.logger.Warning("ShutdownManager", "shutdown step timeout", map[string]interface{}{
				"step": step.Name,
			})
		}
	}

	m.logger.Info("ShutdownManager", "shutdown sequence completed", nil)
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
