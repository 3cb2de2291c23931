package score

import (
	"fmt"
	"math"
	"strings"

	"git.lost.host/meutraa/eotj/internal/game"
	"github.com/fogleman/ease"
)

// Band is a grade awarded from a minimum score up.
type Band struct {
	Name     string  `toml:"name" yaml:"name" json:"name"`
	MinScore float64 `toml:"min_score" yaml:"min_score" json:"min_score"`
}

// Policy decides how verdicts turn into score and grades.
type Policy struct {
	PerfectWeight   float64 `toml:"perfect_weight" yaml:"perfect_weight" json:"perfect_weight"`
	GoodWeight      float64 `toml:"good_weight" yaml:"good_weight" json:"good_weight"`
	BadWeight       float64 `toml:"bad_weight" yaml:"bad_weight" json:"bad_weight"`
	MaxScore        float64 `toml:"max_score" yaml:"max_score" json:"max_score"`
	AccuracyShare   float64 `toml:"accuracy_share" yaml:"accuracy_share" json:"accuracy_share"`
	ComboShare      float64 `toml:"combo_share" yaml:"combo_share" json:"combo_share"`
	ComboCurve      string  `toml:"combo_curve" yaml:"combo_curve" json:"combo_curve"`
	AllPerfectGrade string  `toml:"all_perfect_grade" yaml:"all_perfect_grade" json:"all_perfect_grade"`
	FullComboGrade  string  `toml:"full_combo_grade" yaml:"full_combo_grade" json:"full_combo_grade"`
	Bands           []Band  `toml:"bands" yaml:"bands" json:"bands"` // Highest first
}

func DefaultPolicy() Policy {
	return Policy{
		PerfectWeight:   1,
		GoodWeight:      0.65,
		MaxScore:        1000000,
		AccuracyShare:   0.9,
		ComboShare:      0.1,
		ComboCurve:      "linear",
		AllPerfectGrade: "φ",
		FullComboGrade:  "V-FC",
		Bands: []Band{
			{Name: "V", MinScore: 960000},
			{Name: "S", MinScore: 920000},
			{Name: "A", MinScore: 880000},
			{Name: "B", MinScore: 820000},
			{Name: "C", MinScore: 700000},
			{Name: "F", MinScore: 0},
		},
	}
}

var curves = map[string]ease.Function{
	"linear":      ease.Linear,
	"in-quad":     ease.InQuad,
	"out-quad":    ease.OutQuad,
	"in-out-quad": ease.InOutQuad,
	"in-cubic":    ease.InCubic,
	"out-cubic":   ease.OutCubic,
}

// Curve returns the easing function registered under name.
func Curve(name string) (ease.Function, error) {
	f, ok := curves[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown combo curve %q", name)
	}
	return f, nil
}

// Weight is the accuracy credit of a verdict.
func (p Policy) Weight(v game.Verdict) float64 {
	switch v {
	case game.Perfect:
		return p.PerfectWeight
	case game.GoodEarly, game.GoodLate:
		return p.GoodWeight
	case game.Bad:
		return p.BadWeight
	}
	return 0
}

// Grade returns the band name for a score that is neither all perfect nor a
// full combo.
func (p Policy) Grade(score float64) string {
	for _, b := range p.Bands {
		if score >= b.MinScore {
			return b.Name
		}
	}
	if len(p.Bands) == 0 {
		return ""
	}
	return p.Bands[len(p.Bands)-1].Name
}

// Validate reports every unusable field. Field names are relative to the
// policy.
func (p Policy) Validate() error {
	var errs game.ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, game.ValidationError{Field: field, Message: msg})
	}

	weights := []struct {
		field string
		value float64
	}{
		{"perfect_weight", p.PerfectWeight},
		{"good_weight", p.GoodWeight},
		{"bad_weight", p.BadWeight},
	}
	for _, w := range weights {
		if math.IsNaN(w.value) || w.value < 0 || w.value > 1 {
			add(w.field, "must be between 0 and 1")
		}
	}
	if !(p.MaxScore > 0) || math.IsInf(p.MaxScore, 0) {
		add("max_score", "must be positive")
	}
	if !(p.AccuracyShare >= 0) || !(p.ComboShare >= 0) || math.Abs(p.AccuracyShare+p.ComboShare-1) > 1e-9 {
		add("accuracy_share", "accuracy_share and combo_share must add up to 1")
	}
	if _, err := Curve(p.ComboCurve); nil != err {
		add("combo_curve", err.Error())
	}
	if len(p.Bands) == 0 {
		add("bands", "at least one band is required")
	}
	for i := 1; i < len(p.Bands); i++ {
		if p.Bands[i].MinScore > p.Bands[i-1].MinScore {
			add("bands", "must be ordered from the highest score down")
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
