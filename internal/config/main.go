package config

import (
	"time"

	"gopkg.in/alecthomas/kingpin.v2"
)

// Flags are the command line overrides. Only flags given on the command line
// replace file values.
type Flags struct {
	Path string

	offset      time.Duration
	rate        float64
	delay       time.Duration
	framePeriod time.Duration
	autoplay    bool
	keys        string
	logLevel    string
	db          string

	set map[string]bool
}

func (f *Flags) mark(name string) kingpin.Action {
	return func(*kingpin.ParseContext) error {
		f.set[name] = true
		return nil
	}
}

// RegisterFlags adds the settings flags to app.
func RegisterFlags(app *kingpin.Application) *Flags {
	f := &Flags{set: map[string]bool{}}
	app.Flag("config", "Settings file (toml, yaml or json)").Short('c').StringVar(&f.Path)
	app.Flag("offset", "Global offset").Short('o').Action(f.mark("offset")).DurationVar(&f.offset)
	app.Flag("rate", "Playback rate").Short('r').Action(f.mark("rate")).Float64Var(&f.rate)
	app.Flag("delay", "Start delay").Short('d').Action(f.mark("delay")).DurationVar(&f.delay)
	app.Flag("frame-period", "Render frame period").Short('p').Action(f.mark("frame-period")).DurationVar(&f.framePeriod)
	app.Flag("autoplay", "Let the engine hit every note").Short('a').Action(f.mark("autoplay")).BoolVar(&f.autoplay)
	app.Flag("keys", "Keys that act as pointers").Short('k').Action(f.mark("keys")).StringVar(&f.keys)
	app.Flag("log-level", "Log level").Action(f.mark("log-level")).StringVar(&f.logLevel)
	app.Flag("db", "Score history database").Action(f.mark("db")).StringVar(&f.db)
	return f
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Apply copies the flags given on the command line into cfg.
func (f *Flags) Apply(cfg *Config) {
	if f.set["offset"] {
		cfg.Player.OffsetMs = ms(f.offset)
	}
	if f.set["rate"] {
		cfg.Player.Rate = f.rate
	}
	if f.set["delay"] {
		cfg.Player.DelayMs = ms(f.delay)
	}
	if f.set["frame-period"] {
		cfg.Player.FramePeriodMs = ms(f.framePeriod)
	}
	if f.set["autoplay"] {
		cfg.Judgement.Autoplay = f.autoplay
	}
	if f.set["keys"] {
		cfg.Player.Keys = f.keys
	}
	if f.set["log-level"] {
		cfg.Log.Level = f.logLevel
	}
	if f.set["db"] {
		cfg.History.Path = f.db
	}
}

// Resolve loads the settings file named by the flags, applies the flags over
// it and validates the result.
func (f *Flags) Resolve() (Config, error) {
	cfg, err := Load(f.Path)
	if err != nil {
		return cfg, err
	}
	f.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
