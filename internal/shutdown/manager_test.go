package shutdown

import (
	"errors"
	"sync"
	"testing"
	"time"

	"bmi-tracker/internal/logger"

	"github.com/stretchr/testify/assert"
)

func TestShutdownRunsStepsInReverseOnce(t *testing.T) {
	m := NewManager(logger.NewNop())

	var mu sync.Mutex
	var order []string
	record := func(name string) func() error {
		return func() error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}

	m.Register("store", record("store"))
	m.Register("window", record("window"))
	m.Register("failing", func() error {
		record("failing")()
		return errors.New("boom")
	})

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"failing", "window", "store"}, order)

	select {
	case <-m.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestShutdownDoesNotWaitForeverOnStuckStep(t *testing.T) {
	m := NewManager(logger.NewNop())
	m.SetStepTimeout(20 * time.Millisecond)

	release := make(chan struct{})
	defer close(release)

	ran := false
	m.Register("after", func() error { ran = true; return nil })
	m.Register("stuck", func() error { <-release; return nil })

	start := time.Now()
	m.Shutdown()

	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, ran)
}
