package game

// Verdict is the judgment outcome assigned to a note.
type Verdict uint8

const (
	Unjudged Verdict = iota
	Perfect
	GoodEarly
	GoodLate
	Bad
	Miss
	Passed // fake notes only
)

var verdictNames = [...]string{
	Unjudged:  "Unjudged",
	Perfect:   "Perfect",
	GoodEarly: "Good (early)",
	GoodLate:  "Good (late)",
	Bad:       "Bad",
	Miss:      "Miss",
	Passed:    "Passed",
}

func (v Verdict) String() string {
	if int(v) < len(verdictNames) {
		return verdictNames[v]
	}
	return "Verdict(?)"
}

// Terminal reports whether v is a final outcome.
func (v Verdict) Terminal() bool {
	return v != Unjudged && v <= Passed
}

// Hit reports whether v keeps the combo going.
func (v Verdict) Hit() bool {
	return v == Perfect || v == GoodEarly || v == GoodLate
}

// Breaks reports whether v resets the combo.
func (v Verdict) Breaks() bool {
	return v == Bad || v == Miss
}

// Verdicts lists every terminal verdict in display order.
var Verdicts = []Verdict{Perfect, GoodEarly, GoodLate, Bad, Miss, Passed}
