package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

type countingWarmer struct {
	calls atomic.Int32
	err   error
}

func (w *countingWarmer) Warm(context.Context) ([]domain.ProjectRecord, error) {
	w.calls.Add(1)
	return nil, w.err
}

func TestNew_RejectsBadSpec(t *testing.T) {
	_, err := New("every now and then", &countingWarmer{})
	assert.Error(t, err)
}

func TestRunOnce(t *testing.T) {
	w := &countingWarmer{err: errors.New("store down")}
	s, err := New("@every 1h", w)
	require.NoError(t, err)

	s.RunOnce()
	assert.Equal(t, int32(1), w.calls.Load())
}

func TestScheduler_RunsOnSpec(t *testing.T) {
	w := &countingWarmer{}
	s, err := New("@every 1s", w)
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return w.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}
