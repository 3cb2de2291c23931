package config

import (
	"os"
	"path/filepath"
	"testing"

	"git.lost.host/meutraa/eotj/internal/game"
	"github.com/stretchr/testify/require"
	"gopkg.in/alecthomas/kingpin.v2"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 80.0, cfg.Judgement.PerfectMs)
	require.Equal(t, 160.0, cfg.Judgement.GoodMs)
	require.Zero(t, cfg.Judgement.BadMs)
	require.Equal(t, 5.0, cfg.Judgement.FlickVelocity)
	require.Equal(t, 200.0, cfg.Judgement.Distance)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Judgement.GoodMs = 40
	cfg.Player.Rate = 0
	cfg.Score.ComboCurve = "bounce"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	var ve game.ValidationErrors
	require.ErrorAs(t, err, &ve)

	fields := map[string]bool{}
	for _, e := range ve {
		fields[e.Field] = true
	}
	require.True(t, fields["judgement.good_ms"])
	require.True(t, fields["player.rate"])
	require.True(t, fields["score.combo_curve"])
	require.True(t, fields["log.level"])
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFormats(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"settings.toml": "[judgement]\ngood_ms = 180\n[player]\nkeys = \"asdf\"\n",
		"settings.yaml": "judgement:\n  good_ms: 180\nplayer:\n  keys: asdf\n",
		"settings.json": `{"judgement": {"good_ms": 180}, "player": {"keys": "asdf"}}`,
	}
	for name, content := range files {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err, name)
		require.Equal(t, 180.0, cfg.Judgement.GoodMs, name)
		require.Equal(t, "asdf", cfg.Player.Keys, name)
		// Untouched settings keep their defaults.
		require.Equal(t, 80.0, cfg.Judgement.PerfectMs, name)
		require.Len(t, cfg.Score.Bands, 6, name)
	}
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestFlagsOverrideFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[player]\nrate = 1.5\nkeys = \"asdf\"\n"), 0o644))

	app := kingpin.New("test", "")
	flags := RegisterFlags(app)
	_, err := app.Parse([]string{"--config", path, "--keys", "jkl;", "--offset", "25ms", "--autoplay"})
	require.NoError(t, err)

	cfg, err := flags.Resolve()
	require.NoError(t, err)
	require.Equal(t, "jkl;", cfg.Player.Keys)
	require.Equal(t, 1.5, cfg.Player.Rate, "flags that were not given keep the file value")
	require.Equal(t, 25.0, cfg.Player.OffsetMs)
	require.True(t, cfg.Judgement.Autoplay)
}
