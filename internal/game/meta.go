package game

type Meta struct {
	Name     string
	Composer string
	Charter  string
	Level    string

	OffsetMs    float64 // Delay of the chart relative to the audio
	DurationSec float64 // Song length, zero when unknown
}
