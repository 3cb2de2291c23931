package engine

import (
	"testing"

	"git.lost.host/meutraa/eotj/internal/config"
	"git.lost.host/meutraa/eotj/internal/game"
	"git.lost.host/meutraa/eotj/internal/testdata"
	"github.com/stretchr/testify/require"
)

func TestReplayIsDeterministic(t *testing.T) {
	t.Parallel()

	events := sessionEvents()
	first, err := Replay(testdata.GetChart(), config.Default(), events, 0.01)
	require.NoError(t, err)
	second, err := Replay(testdata.GetChart(), config.Default(), events, 0.01)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 3, first.Counts[game.Perfect])
	require.Equal(t, 4, first.Counts[game.Miss])
}

func TestReplayAutoplay(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Judgement.Autoplay = true
	r, err := Replay(testdata.GetChart(), cfg, nil, 1.0/240)
	require.NoError(t, err)
	require.True(t, r.AllPerfect)
}

func TestReplayRejectsBadTick(t *testing.T) {
	t.Parallel()

	_, err := Replay(testdata.GetChart(), config.Default(), nil, 0)
	require.Error(t, err)
}
