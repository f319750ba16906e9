package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-quad/common"
	"github.com/stretchr/testify/assert"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer common.SetLogger(nil)

	clock := time.Unix(100, 0)
	p := NewProfiler(time.Second)
	p.now = func() time.Time { return clock }
	p.lastTime = clock

	for range 59 {
		clock = clock.Add(10 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	p.Drop()
	clock = clock.Add(410 * time.Millisecond)
	assert.True(t, p.Tick())

	assert.Contains(t, buf.String(), "fps=60")
	assert.Contains(t, buf.String(), "dropped=1")
	assert.Zero(t, p.frameCount)
	assert.Zero(t, p.dropped)
}

func TestNewProfilerDefaultsInterval(t *testing.T) {
	assert.Equal(t, time.Second, NewProfiler(0).updateInterval)
	assert.Equal(t, 2*time.Second, NewProfiler(2*time.Second).updateInterval)
}
