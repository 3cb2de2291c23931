// Package config holds the judgment, scoring and player settings, their
// defaults and the file and flag layers that override them.
package config

import (
	"math"

	"git.lost.host/meutraa/eotj/internal/game"
	"git.lost.host/meutraa/eotj/internal/score"
	"github.com/sirupsen/logrus"
)

// Judgement holds the hit windows and matching thresholds.
type Judgement struct {
	PerfectMs     float64 `toml:"perfect_ms" yaml:"perfect_ms" json:"perfect_ms"`
	GoodMs        float64 `toml:"good_ms" yaml:"good_ms" json:"good_ms"`
	BadMs         float64 `toml:"bad_ms" yaml:"bad_ms" json:"bad_ms"`
	FlickVelocity float64 `toml:"flick_velocity" yaml:"flick_velocity" json:"flick_velocity"` // Chart units per second
	Distance      float64 `toml:"distance" yaml:"distance" json:"distance"`                   // Chart units along the line
	HoldBodyMs    float64 `toml:"hold_body_ms" yaml:"hold_body_ms" json:"hold_body_ms"`
	HoldTailMs    float64 `toml:"hold_tail_ms" yaml:"hold_tail_ms" json:"hold_tail_ms"`
	Autoplay      bool    `toml:"autoplay" yaml:"autoplay" json:"autoplay"`
}

type Player struct {
	OffsetMs           float64 `toml:"offset_ms" yaml:"offset_ms" json:"offset_ms"`
	Rate               float64 `toml:"rate" yaml:"rate" json:"rate"`
	DelayMs            float64 `toml:"delay_ms" yaml:"delay_ms" json:"delay_ms"`
	FramePeriodMs      float64 `toml:"frame_period_ms" yaml:"frame_period_ms" json:"frame_period_ms"`
	ProgressIntervalMs float64 `toml:"progress_interval_ms" yaml:"progress_interval_ms" json:"progress_interval_ms"`
	Keys               string  `toml:"keys" yaml:"keys" json:"keys"`
	KeyReleaseMs       float64 `toml:"key_release_ms" yaml:"key_release_ms" json:"key_release_ms"`
}

type Log struct {
	Level string `toml:"level" yaml:"level" json:"level"`
}

// History is where played sessions are stored.
type History struct {
	Path     string `toml:"path" yaml:"path" json:"path"`
	Disabled bool   `toml:"disabled" yaml:"disabled" json:"disabled"`
}

type Config struct {
	Judgement Judgement    `toml:"judgement" yaml:"judgement" json:"judgement"`
	Score     score.Policy `toml:"score" yaml:"score" json:"score"`
	Player    Player       `toml:"player" yaml:"player" json:"player"`
	Log       Log          `toml:"log" yaml:"log" json:"log"`
	History   History      `toml:"history" yaml:"history" json:"history"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Judgement: Judgement{
			PerfectMs:     80,
			GoodMs:        160,
			FlickVelocity: 5,
			Distance:      200,
			HoldBodyMs:    100,
			HoldTailMs:    100,
		},
		Score:  score.DefaultPolicy(),
		Player: Player{
			Rate:               1,
			DelayMs:            1500,
			FramePeriodMs:      1,
			ProgressIntervalMs: 100,
			Keys:               "dfjk",
			KeyReleaseMs:       120,
		},
		Log:     Log{Level: "info"},
		History: History{Path: "./scores.db"},
	}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// Validate reports every setting the engine cannot run with.
func (c Config) Validate() error {
	var errs game.ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, game.ValidationError{Field: field, Message: msg})
	}

	j := c.Judgement
	if !positive(j.PerfectMs) {
		add("judgement.perfect_ms", "must be positive")
	}
	if !positive(j.GoodMs) || j.GoodMs < j.PerfectMs {
		add("judgement.good_ms", "must be positive and at least perfect_ms")
	}
	if !nonNegative(j.BadMs) {
		add("judgement.bad_ms", "must not be negative")
	}
	if !nonNegative(j.FlickVelocity) {
		add("judgement.flick_velocity", "must not be negative")
	}
	if !positive(j.Distance) {
		add("judgement.distance", "must be positive")
	}
	if !nonNegative(j.HoldBodyMs) {
		add("judgement.hold_body_ms", "must not be negative")
	}
	if !nonNegative(j.HoldTailMs) {
		add("judgement.hold_tail_ms", "must not be negative")
	}

	if err := c.Score.Validate(); err != nil {
		if ve, ok := err.(game.ValidationErrors); ok {
			for _, e := range ve {
				add("score."+e.Field, e.Message)
			}
		} else {
			add("score", err.Error())
		}
	}

	p := c.Player
	if !positive(p.Rate) {
		add("player.rate", "must be positive")
	}
	if !nonNegative(p.DelayMs) {
		add("player.delay_ms", "must not be negative")
	}
	if !positive(p.FramePeriodMs) {
		add("player.frame_period_ms", "must be positive")
	}
	if !nonNegative(p.ProgressIntervalMs) {
		add("player.progress_interval_ms", "must not be negative")
	}
	if p.Keys == "" {
		add("player.keys", "at least one key is required")
	}
	if !positive(p.KeyReleaseMs) {
		add("player.key_release_ms", "must be positive")
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		add("log.level", err.Error())
	}
	if !c.History.Disabled && c.History.Path == "" {
		add("history.path", "required unless history is disabled")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
