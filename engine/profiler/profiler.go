package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// Sample is what one frame reports to the profiler.
type Sample struct {
	DeltaTime float32
	Markers   int
	PeakDepth int
}

// Report summarizes one profiling interval.
type Report struct {
	Frames      int
	FPS         float64
	MeanDelta   time.Duration
	Markers     int
	PeakDepth   int
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
}

func (r Report) String() string {
	return fmt.Sprintf("FPS: %.2f | dt: %s | Markers: %d | Peak depth: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d",
		r.FPS, r.MeanDelta, r.Markers, r.PeakDepth, r.HeapMB, r.AllocRateMB, r.GCCount)
}

// Profiler accumulates frame samples and logs a Report once per interval.
type Profiler struct {
	frameCount     int
	deltaSum       float64
	markers        int
	peakDepth      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
	now            func() time.Time
	last           Report
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		now:            time.Now,
	}
}

// SetInterval changes how often reports are logged. Non-positive values are ignored.
//
// Parameters:
//   - interval: the reporting interval
func (p *Profiler) SetInterval(interval time.Duration) {
	if interval > 0 {
		p.updateInterval = interval
	}
}

// Tick records one frame and logs a Report when the update interval has elapsed.
// Markers are summed over the interval; the peak depth is the interval maximum.
//
// Parameters:
//   - s: the frame's sample
//
// Returns:
//   - bool: true if a report was logged this tick
func (p *Profiler) Tick(s Sample) bool {
	p.frameCount++
	p.deltaSum += float64(s.DeltaTime)
	p.markers += s.Markers
	p.peakDepth = max(p.peakDepth, s.PeakDepth)

	current := p.now()
	elapsed := current.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	r := Report{
		Frames:      p.frameCount,
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		MeanDelta:   time.Duration(p.deltaSum / float64(p.frameCount) * float64(time.Second)),
		Markers:     p.markers,
		PeakDepth:   p.peakDepth,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
	}
	log.Printf("[Profiler] %s", r)

	p.last = r
	p.frameCount = 0
	p.deltaSum = 0
	p.markers = 0
	p.peakDepth = 0
	p.lastTime = current
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recent report, or the zero Report before the first one.
//
// Returns:
//   - Report: the report
func (p *Profiler) Last() Report {
	return p.last
}
