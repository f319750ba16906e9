package profiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-quad/common"
)

// Profiler counts drawn frames and reports frame rate and memory statistics through the
// shared logger at a fixed interval.
type Profiler struct {
	frameCount     int
	dropped        int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	now func() time.Time
}

// NewProfiler creates a Profiler that reports once per interval. Intervals <= 0 default to one second.
//
// Parameters:
//   - interval: time between reports
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
		now:            time.Now,
	}
}

// Drop records a frame that was attempted but not presented.
func (p *Profiler) Drop() {
	p.dropped++
}

// Tick should be called once per drawn frame. When the interval has elapsed it logs FPS,
// dropped frames, heap usage, allocation rate, GC count and the largest recent GC pause.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	seconds := elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var maxPause time.Duration
	if gcCount > 0 {
		// PauseNs is a ring of the last 256 pauses.
		start := p.lastGCCount
		if gcCount-start > 256 {
			start = gcCount - 256
		}
		for i := start; i < gcCount; i++ {
			maxPause = max(maxPause, time.Duration(p.memStats.PauseNs[i%256]))
		}
	}

	common.Logger().Info("profiler",
		slog.Float64("fps", float64(p.frameCount)/seconds),
		slog.Int("dropped", p.dropped),
		slog.Float64("heap_mb", float64(p.memStats.Alloc)/1024/1024),
		slog.Float64("alloc_mb_per_s", float64(p.memStats.TotalAlloc-p.lastTotalAlloc)/1024/1024/seconds),
		slog.Uint64("gc", uint64(gcCount)),
		slog.Duration("gc_max_pause", maxPause),
		slog.Float64("sys_mb", float64(p.memStats.Sys)/1024/1024),
	)

	p.frameCount = 0
	p.dropped = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
