// Package audio plays the song and tells the session where playback is.
package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/gruntwork-io/go-commons/errors"
	"k8s.io/utils/clock"
)

// Clock reports the playback position in seconds of song.
type Clock interface {
	Position() float64
}

// Player streams a song file to the speaker.
type Player struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
}

// Open decodes an mp3, ogg or wav file.
func Open(path string) (*Player, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, errors.WithStackTrace(fmt.Errorf("open audio: %w", err))
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
	if nil != err {
		f.Close()
		return nil, errors.WithStackTrace(fmt.Errorf("decode audio: %w", err))
	}
	return &Player{
		streamer: streamer,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: streamer, Paused: true},
	}, nil
}

// Start opens the speaker, resampled by rate, and starts playback after delay.
func (p *Player) Start(rate float64, delay time.Duration) error {
	sr := beep.SampleRate(math.Round(float64(p.format.SampleRate) * rate))
	if err := speaker.Init(sr, sr.N(time.Second/60)); nil != err {
		return errors.WithStackTrace(fmt.Errorf("init speaker: %w", err))
	}
	speaker.Play(p.ctrl)
	time.AfterFunc(delay, func() {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
	})
	return nil
}

// Position is the playback position in seconds of the file.
func (p *Player) Position() float64 {
	speaker.Lock()
	defer speaker.Unlock()
	return p.format.SampleRate.D(p.streamer.Position()).Seconds()
}

// Seek moves playback to sec seconds of the file.
func (p *Player) Seek(sec float64) error {
	n := p.format.SampleRate.N(time.Duration(sec * float64(time.Second)))
	if n < 0 {
		n = 0
	}
	if l := p.streamer.Len(); n > l {
		n = l
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.streamer.Seek(n)
}

// Length is the duration of the file in seconds.
func (p *Player) Length() float64 {
	return p.format.SampleRate.D(p.streamer.Len()).Seconds()
}

func (p *Player) Close() error {
	speaker.Lock()
	p.ctrl.Streamer = nil
	speaker.Unlock()
	return p.streamer.Close()
}

// WallClock is the playback position of a session without audio, counted
// from the wall clock and sped up by rate.
type WallClock struct {
	clock clock.PassiveClock
	start time.Time
	rate  float64
}

// NewWallClock starts counting after delay.
func NewWallClock(c clock.PassiveClock, rate float64, delay time.Duration) *WallClock {
	return &WallClock{clock: c, start: c.Now().Add(delay), rate: rate}
}

func (w *WallClock) Position() float64 {
	return w.clock.Since(w.start).Seconds() * w.rate
}

// Seek moves the position to sec.
func (w *WallClock) Seek(sec float64) error {
	w.start = w.clock.Now().Add(-time.Duration(sec / w.rate * float64(time.Second)))
	return nil
}
