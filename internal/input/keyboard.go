package input

import (
	"fmt"

	"github.com/eiannone/keyboard"
	"golang.org/x/exp/slices"
)

// keyPointerBase keeps key pointers clear of touch pointer IDs.
const keyPointerBase = 1 << 16

// KeySource turns terminal key presses into pointer events. A terminal only
// reports presses and auto repeats, so a key counts as held while repeats keep
// arriving and is lifted once none came for releaseSec.
type KeySource struct {
	keys       []rune
	releaseSec float64
	lastSeen   map[rune]float64
}

func NewKeySource(keys string, releaseSec float64) *KeySource {
	return &KeySource{
		keys:       []rune(keys),
		releaseSec: releaseSec,
		lastSeen:   map[rune]float64{},
	}
}

func (k *KeySource) pointer(r rune) (int, bool) {
	for i, c := range k.keys {
		if c == r {
			return keyPointerBase + i, true
		}
	}
	return 0, false
}

// Press handles a key event at songTimeSec. Unbound keys produce nothing.
func (k *KeySource) Press(r rune, songTimeSec float64) []Event {
	id, ok := k.pointer(r)
	if !ok {
		return nil
	}
	_, held := k.lastSeen[r]
	k.lastSeen[r] = songTimeSec
	if held {
		return nil
	}
	return []Event{{Pointer: id, Action: Press, TimeSec: songTimeSec}}
}

// Expire lifts every key that has not repeated recently.
func (k *KeySource) Expire(songTimeSec float64) []Event {
	return k.lift(songTimeSec, false)
}

// ReleaseAll lifts every held key, before playback jumps.
func (k *KeySource) ReleaseAll(songTimeSec float64) []Event {
	return k.lift(songTimeSec, true)
}

func (k *KeySource) lift(songTimeSec float64, all bool) []Event {
	var lifted []rune
	for r, last := range k.lastSeen {
		if all || songTimeSec-last > k.releaseSec {
			lifted = append(lifted, r)
		}
	}
	slices.Sort(lifted)

	events := make([]Event, 0, len(lifted))
	for _, r := range lifted {
		delete(k.lastSeen, r)
		id, _ := k.pointer(r)
		events = append(events, Event{Pointer: id, Action: Release, TimeSec: songTimeSec})
	}
	return events
}

// OpenKeyboard puts the terminal in raw key mode and streams key events. The
// returned function restores the terminal.
func OpenKeyboard(buffer int) (<-chan keyboard.KeyEvent, func() error, error) {
	keys, err := keyboard.GetKeys(buffer)
	if nil != err {
		return nil, nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	return keys, keyboard.Close, nil
}
