package main

import (
	"testing"
	"time"

	"git.lost.host/meutraa/eotj/internal/audio"
	"git.lost.host/meutraa/eotj/internal/config"
	"git.lost.host/meutraa/eotj/internal/engine"
	"git.lost.host/meutraa/eotj/internal/game"
	"git.lost.host/meutraa/eotj/internal/input"
	"git.lost.host/meutraa/eotj/internal/logger"
	"git.lost.host/meutraa/eotj/internal/testdata"
	"github.com/eiannone/keyboard"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

func newTestProgram(t *testing.T, cfg config.Config) (*Program, *testingclock.FakePassiveClock) {
	e, err := engine.New(testdata.GetChart(), cfg, engine.WithLogger(logger.Discard()))
	require.NoError(t, err)
	fake := testingclock.NewFakePassiveClock(time.Unix(0, 0))
	return &Program{
		cfg:    cfg,
		logger: logger.Discard(),
		engine: e,
		keys:   input.NewKeySource(cfg.Player.Keys, cfg.Player.KeyReleaseMs/1000),
		clock:  audio.NewWallClock(fake, 1, 0),
	}, fake
}

func TestSeekBackDropsRecordedInput(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	p, fake := newTestProgram(t, cfg)
	keys := make(chan keyboard.KeyEvent, 4)
	update := func(wall time.Time, pressed ...keyboard.KeyEvent) {
		fake.SetTime(wall)
		for _, k := range pressed {
			keys <- k
		}
		_, ok := p.Update(keys, p.engine.SongTime(p.clock.Position()))
		require.True(t, ok)
	}

	// First pass: the tap at 1.0s is hit.
	update(time.Unix(0, 0).Add(1000*time.Millisecond), keyboard.KeyEvent{Rune: 'd'})
	update(time.Unix(0, 0).Add(1200 * time.Millisecond))
	tap, _ := p.engine.Verdict(0)
	require.Equal(t, game.Perfect, tap.Final)
	require.Len(t, p.events, 2)

	update(time.Unix(0, 0).Add(1200*time.Millisecond), keyboard.KeyEvent{Key: keyboard.KeyArrowLeft})
	require.Empty(t, p.events)
	tap, _ = p.engine.Verdict(0)
	require.Equal(t, game.Unjudged, tap.Final)

	// Second pass from the start: the key comes too late for the tap.
	base := fake.Now()
	for ms := 10; ms <= 5200; ms += 10 {
		var pressed []keyboard.KeyEvent
		if ms == 1500 {
			pressed = append(pressed, keyboard.KeyEvent{Rune: 'd'})
		}
		update(base.Add(time.Duration(ms)*time.Millisecond), pressed...)
	}
	require.Equal(t, engine.Finished, p.engine.Status())
	tap, _ = p.engine.Verdict(0)
	require.Equal(t, game.Miss, tap.Final)

	live := p.engine.Result()
	replayed, err := engine.Replay(testdata.GetChart(), cfg, p.events, 0.01)
	require.NoError(t, err)
	require.Equal(t, live.Counts, replayed.Counts)
	require.Equal(t, live.Score, replayed.Score)
	require.Equal(t, 1, replayed.Counts[game.Perfect])
}

func TestEscQuits(t *testing.T) {
	t.Parallel()

	p, _ := newTestProgram(t, config.Default())
	keys := make(chan keyboard.KeyEvent, 1)
	keys <- keyboard.KeyEvent{Key: keyboard.KeyEsc}
	_, ok := p.Update(keys, 0)
	require.False(t, ok)
}
