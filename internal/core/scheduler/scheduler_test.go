package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddReplaceRemove(t *testing.T) {
	s := New()

	require.NoError(t, s.Add("sweep", "0 */5 * * * *", func() {}))
	require.NoError(t, s.Add("sweep", "0 */1 * * * *", func() {}))
	require.NoError(t, s.Add("audit", "0 0 * * * *", func() {}))
	assert.Equal(t, []string{"audit", "sweep"}, s.Jobs())

	s.Remove("sweep")
	s.Remove("missing")
	assert.Equal(t, []string{"audit"}, s.Jobs())
}

func TestInvalidSchedule(t *testing.T) {
	s := New()
	err := s.Add("sweep", "*/5 * * * *", func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sweep")
	assert.Empty(t, s.Jobs())
}

func TestJobRuns(t *testing.T) {
	s := New()
	var runs int32
	require.NoError(t, s.Add("tick", "* * * * * *", func() { atomic.AddInt32(&runs, 1) }))

	s.Start()
	defer s.Stop()
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) > 0 }, 3*time.Second, 50*time.Millisecond)
}
