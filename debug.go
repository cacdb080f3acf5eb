package dotfield

import (
	"fmt"
	"os"
	"time"
)

// frameStats holds per-frame evaluation and render metrics.
// Only populated when Engine.debug is true.
type frameStats struct {
	tickTime   time.Duration
	renderTime time.Duration

	dotsReset     int
	dotsEvaluated int // effect evaluations, not distinct dots
	dotsAffected  int
	dotsRendered  int
	dirtyRegions  int
}

// logTick prints tick-phase metrics to stderr.
func (e *Engine) logTick() {
	if !e.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[dotfield] tick: %v | reset: %d | evals: %d | affected: %d\n",
		e.stats.tickTime, e.stats.dotsReset, e.stats.dotsEvaluated, e.stats.dotsAffected)
}

// logRender prints render-phase metrics to stderr.
func (e *Engine) logRender() {
	if !e.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[dotfield] render: %v | regions: %d | dots drawn: %d\n",
		e.stats.renderTime, e.stats.dirtyRegions, e.stats.dotsRendered)
}

// debugWarnGridSize warns on stderr when a grid is large enough that a full
// repaint will be noticeable.
const debugMaxGridDots = 250_000

func debugWarnGridSize(rows, cols int) {
	if rows*cols > debugMaxGridDots {
		_, _ = fmt.Fprintf(os.Stderr, "[dotfield] warning: grid %dx%d has %d dots (threshold %d)\n",
			rows, cols, rows*cols, debugMaxGridDots)
	}
}
