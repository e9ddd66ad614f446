package monitoring

import (
	"sync"
	"sync/atomic"
	"time"
)

// FrameMonitor measures the time between frames and the time spent inside them
type FrameMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	lastDelta  atomic.Int64 // nanoseconds between the two latest ticks
	lastWork   atomic.Int64 // nanoseconds spent in the latest frame

	// Statistics
	mutex      sync.RWMutex
	lastTick   time.Time
	totalDelta time.Duration
	peakDelta  time.Duration
	startTime  time.Time
}

// FrameStats is a snapshot of the monitor's counters
type FrameStats struct {
	Frames    uint64
	LastDelta time.Duration
	AvgDelta  time.Duration
	PeakDelta time.Duration
	LastWork  time.Duration
	Uptime    time.Duration
}

// NewFrameMonitor creates a new frame monitor
func NewFrameMonitor() *FrameMonitor {
	return &FrameMonitor{startTime: time.Now()}
}

// Tick records a frame boundary at now and returns the time elapsed since
// the previous one. The first tick returns zero.
func (fm *FrameMonitor) Tick(now time.Time) time.Duration {
	fm.mutex.Lock()
	defer fm.mutex.Unlock()

	var delta time.Duration
	if !fm.lastTick.IsZero() {
		delta = now.Sub(fm.lastTick)
		if delta < 0 {
			delta = 0
		}
	}
	fm.lastTick = now

	fm.frameCount.Add(1)
	fm.lastDelta.Store(int64(delta))
	fm.totalDelta += delta
	if delta > fm.peakDelta {
		fm.peakDelta = delta
	}
	return delta
}

// FrameTimer helps measure frame work time
type FrameTimer struct {
	monitor   *FrameMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (fm *FrameMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   fm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	ft.monitor.lastWork.Store(int64(time.Since(ft.startTime)))
}

// Stats returns the current counters
func (fm *FrameMonitor) Stats() FrameStats {
	fm.mutex.RLock()
	defer fm.mutex.RUnlock()

	frames := fm.frameCount.Load()
	stats := FrameStats{
		Frames:    frames,
		LastDelta: time.Duration(fm.lastDelta.Load()),
		PeakDelta: fm.peakDelta,
		LastWork:  time.Duration(fm.lastWork.Load()),
		Uptime:    time.Since(fm.startTime),
	}
	// The first tick has no interval, so it does not count towards the average
	if frames > 1 {
		stats.AvgDelta = fm.totalDelta / time.Duration(frames-1)
	}
	return stats
}

// Reset clears all counters
func (fm *FrameMonitor) Reset() {
	fm.mutex.Lock()
	defer fm.mutex.Unlock()

	fm.frameCount.Store(0)
	fm.lastDelta.Store(0)
	fm.lastWork.Store(0)
	fm.lastTick = time.Time{}
	fm.totalDelta = 0
	fm.peakDelta = 0
	fm.startTime = time.Now()
}
