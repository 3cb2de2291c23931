package engine

import (
	"fmt"
	"math"

	"git.lost.host/meutraa/eotj/internal/config"
	"git.lost.host/meutraa/eotj/internal/game"
	"git.lost.host/meutraa/eotj/internal/input"
	"git.lost.host/meutraa/eotj/internal/logger"
	"git.lost.host/meutraa/eotj/internal/score"
	"golang.org/x/exp/slices"
)

// Replay plays events through a fresh engine in steps of tickSec and returns
// the result. The same chart, settings and events always give the same
// result.
func Replay(chart *game.Chart, cfg config.Config, events []input.Event, tickSec float64, opts ...Option) (score.Result, error) {
	if !(tickSec > 0) || math.IsInf(tickSec, 0) {
		return score.Result{}, fmt.Errorf("replay tick must be positive, got %v", tickSec)
	}
	e, err := New(chart, cfg, append([]Option{WithLogger(logger.Discard())}, opts...)...)
	if err != nil {
		return score.Result{}, err
	}
	defer e.Close()

	pending := append([]input.Event(nil), events...)
	slices.SortStableFunc(pending, func(a, b input.Event) bool { return a.TimeSec < b.TimeSec })

	start := 0.0
	if len(pending) > 0 && pending[0].TimeSec < start {
		start = pending[0].TimeSec
	}
	// Integer steps keep the tick times free of accumulated rounding.
	for step := 0; e.Status() != Finished; step++ {
		t := start + float64(step)*tickSec
		n := 0
		for n < len(pending) && pending[n].TimeSec <= t {
			n++
		}
		e.Feed(pending[:n]...)
		pending = pending[n:]
		e.Tick(t)
		if t > e.EndTime()+1 {
			break
		}
	}
	return e.Result(), nil
}
