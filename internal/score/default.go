package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"git.lost.host/meutraa/eotj/internal/game"
	"git.lost.host/meutraa/eotj/internal/input"
	"git.lost.host/meutraa/eotj/internal/logger"
	"github.com/gruntwork-io/go-commons/errors"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

type DefaultStore struct {
	db  *sql.DB
	log *logrus.Entry
}

// EventsCompact is the input of one pointer, stored as parallel columns.
type EventsCompact struct {
	Pointer    int
	Positional bool
	Actions    []input.Action
	Times      []float64
	X          []float64 `json:",omitempty"`
	Y          []float64 `json:",omitempty"`
}

func compactEvents(events []input.Event) []EventsCompact {
	byPointer := map[int]*EventsCompact{}
	var ids []int
	for _, e := range events {
		c, ok := byPointer[e.Pointer]
		if !ok {
			c = &EventsCompact{Pointer: e.Pointer, Positional: e.Positional}
			byPointer[e.Pointer] = c
			ids = append(ids, e.Pointer)
		}
		c.Actions = append(c.Actions, e.Action)
		c.Times = append(c.Times, e.TimeSec)
		if c.Positional {
			c.X = append(c.X, e.X)
			c.Y = append(c.Y, e.Y)
		}
	}
	slices.Sort(ids)
	out := make([]EventsCompact, 0, len(ids))
	for _, id := range ids {
		out = append(out, *byPointer[id])
	}
	return out
}

func uncompactEvents(compact []EventsCompact) []input.Event {
	events := []input.Event{}
	for _, c := range compact {
		for i, t := range c.Times {
			e := input.Event{Pointer: c.Pointer, Action: c.Actions[i], TimeSec: t, Positional: c.Positional}
			if c.Positional && i < len(c.X) && i < len(c.Y) {
				e.X, e.Y = c.X[i], c.Y[i]
			}
			events = append(events, e)
		}
	}
	slices.SortStableFunc(events, func(a, b input.Event) bool { return a.TimeSec < b.TimeSec })
	return events
}

// Open opens or creates the history database at path.
func Open(path string) (*DefaultStore, error) {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, errors.WithStackTrace(fmt.Errorf("open history %s: %w", path, err))
	}

	initStatement := `
	create table if not exists scores
	  (
		  id integer not null primary key,
		  sum text,
		  rate real,
		  played_at integer,
		  score real,
		  grade text,
		  inputs bytearray
	  );
	create index if not exists scores_sum on scores(sum);
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, errors.WithStackTrace(fmt.Errorf("create history tables: %w", err))
	}

	return &DefaultStore{db: db, log: logger.GetProjectLogger().WithField("store", path)}, nil
}

func (s *DefaultStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// HashChart identifies a chart by its timing and notes.
func HashChart(c *game.Chart) string {
	data, _ := json.Marshal(struct {
		BPMs  []game.BPMChange
		Lines []game.Line
		Notes []*game.Note
	}{c.BPMs, c.Lines, c.Notes})
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (s *DefaultStore) Save(c *game.Chart, events []input.Event, rate float64, result Result) error {
	data, err := json.Marshal(compactEvents(events))
	if nil != err {
		return fmt.Errorf("marshal inputs: %w", err)
	}
	_, err = s.db.Exec(
		"insert into scores(sum, rate, played_at, score, grade, inputs) values(?, ?, ?, ?, ?, ?)",
		HashChart(c), rate, time.Now().Unix(), result.Score, result.Grade, data,
	)
	if nil != err {
		return errors.WithStackTrace(fmt.Errorf("save score: %w", err))
	}
	return nil
}

func (s *DefaultStore) Load(c *game.Chart) ([]History, error) {
	histories := []History{}
	rows, err := s.db.Query("select id, sum, rate, played_at, score, grade, inputs from scores where sum = ? order by id", HashChart(c))
	if nil != err {
		return histories, errors.WithStackTrace(fmt.Errorf("load scores: %w", err))
	}
	defer rows.Close()
	for rows.Next() {
		var h History
		var playedAt int64
		var data []byte
		if err := rows.Scan(&h.ID, &h.Sum, &h.Rate, &playedAt, &h.Score, &h.Grade, &data); nil != err {
			return histories, errors.WithStackTrace(fmt.Errorf("scan score: %w", err))
		}
		var compact []EventsCompact
		if err := json.Unmarshal(data, &compact); nil != err {
			s.log.WithError(err).WithField("id", h.ID).Warn("unable to unmarshal input history")
			continue
		}
		h.PlayedAt = time.Unix(playedAt, 0)
		h.Events = uncompactEvents(compact)
		histories = append(histories, h)
	}
	return histories, rows.Err()
}
