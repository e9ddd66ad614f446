package game

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	perfLowFpsRatio    = 0.9 // of the target TPS
	perfLowFpsDuration = 3 * time.Second
	perfLogInterval    = 3 * time.Second
)

// perfWatch decides when a sustained frame rate drop is worth a log line.
type perfWatch struct {
	lowSince time.Time
	lastLog  time.Time
}

// observe records one fps sample and reports whether to log now.
func (pw *perfWatch) observe(now time.Time, fps, threshold float64) bool {
	if fps >= threshold {
		pw.lowSince = time.Time{}
		pw.lastLog = time.Time{}
		return false
	}
	if pw.lowSince.IsZero() {
		pw.lowSince = now
		return false
	}
	if now.Sub(pw.lowSince) < perfLowFpsDuration {
		return false
	}
	if !pw.lastLog.IsZero() && now.Sub(pw.lastLog) < perfLogInterval {
		return false
	}
	pw.lastLog = now
	return true
}

func (g *Game) maybeLogPerfDrop() {
	if !g.config.Display.PerfLog {
		return
	}
	fps := ebiten.ActualFPS()
	threshold := float64(g.config.GetTPS()) * perfLowFpsRatio
	if g.perf.observe(time.Now(), fps, threshold) {
		g.logPerfSnapshot(fps)
	}
}

func (g *Game) logPerfSnapshot(fps float64) {
	stats := g.monitor.Stats()
	log.Printf("Perf: fps=%.1f tps=%.1f budget=%.2fms work=%v avg_delta=%v peak_delta=%v frames=%d",
		fps, ebiten.ActualTPS(), frameBudgetMs(fps), stats.LastWork, stats.AvgDelta, stats.PeakDelta, stats.Frames)
}

func frameBudgetMs(fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return 1000.0 / fps
}
