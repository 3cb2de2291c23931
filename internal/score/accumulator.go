package score

import (
	"math"

	"git.lost.host/meutraa/eotj/internal/game"
	"git.lost.host/meutraa/eotj/internal/judge"
	"github.com/fogleman/ease"
)

// Accumulator folds final verdicts into combo, score and accuracy. Its state
// depends only on the sequence of verdicts applied.
type Accumulator struct {
	policy Policy
	curve  ease.Function
	total  int

	combo    int
	maxCombo int
	weight   float64
	judged   int
	counts   Counts

	// Running hit error, Welford's method.
	hits int
	mean float64
	m2   float64
}

// NewAccumulator returns an accumulator for a chart with total scorable
// notes.
func NewAccumulator(p Policy, total int) (*Accumulator, error) {
	if err := p.Validate(); nil != err {
		return nil, err
	}
	curve, err := Curve(p.ComboCurve)
	if nil != err {
		return nil, err
	}
	return &Accumulator{policy: p, curve: curve, total: total}, nil
}

// Apply records one final verdict. Passed and Unjudged are ignored.
func (a *Accumulator) Apply(v game.Verdict, deltaMs float64) {
	if !v.Hit() && !v.Breaks() {
		return
	}
	a.counts[v]++
	a.judged++
	a.weight += a.policy.Weight(v)

	if v.Hit() {
		a.combo++
		if a.combo > a.maxCombo {
			a.maxCombo = a.combo
		}
	} else {
		a.combo = 0
	}

	if v != game.Miss {
		a.hits++
		d := deltaMs - a.mean
		a.mean += d / float64(a.hits)
		a.m2 += d * (deltaMs - a.mean)
	}
}

// Score is a monotone function of the weights and the longest combo.
func (a *Accumulator) Score() float64 {
	p := a.policy
	if a.total == 0 {
		return p.MaxScore
	}
	n := float64(a.total)
	combo := math.Min(float64(a.maxCombo)/n, 1)
	return math.Round(p.MaxScore * (p.AccuracyShare*a.weight/n + p.ComboShare*a.curve(combo)))
}

func (a *Accumulator) Accuracy() float64 {
	if a.judged == 0 {
		return 1
	}
	return a.weight / float64(a.judged)
}

func (a *Accumulator) Snapshot() Snapshot {
	s := Snapshot{
		Combo:       a.combo,
		MaxCombo:    a.maxCombo,
		Score:       a.Score(),
		Accuracy:    a.Accuracy(),
		Counts:      a.counts,
		Judged:      a.judged,
		Total:       a.total,
		MeanErrorMs: a.mean,
	}
	if a.hits > 1 {
		s.StdevErrorMs = math.Sqrt(a.m2 / float64(a.hits-1))
	}
	return s
}

// Result grades the session as it stands.
func (a *Accumulator) Result() Result {
	r := Result{Snapshot: a.Snapshot()}
	r.AllPerfect = a.counts[game.Perfect] == a.total
	r.FullCombo = a.judged == a.total && a.counts[game.Bad] == 0 && a.counts[game.Miss] == 0
	switch {
	case r.AllPerfect:
		r.Grade = a.policy.AllPerfectGrade
	case r.FullCombo:
		r.Grade = a.policy.FullComboGrade
	default:
		r.Grade = a.policy.Grade(r.Score)
	}
	return r
}

// Reset forgets every verdict applied.
func (a *Accumulator) Reset() {
	*a = Accumulator{policy: a.policy, curve: a.curve, total: a.total}
}

// Fold rebuilds the statistics from a log of transitions. Temp transitions
// and transitions that are not final verdicts are skipped.
func Fold(a *Accumulator, log []judge.Transition) {
	a.Reset()
	for _, t := range log {
		if t.Temp {
			continue
		}
		a.Apply(t.Verdict, t.DeltaMs)
	}
}
