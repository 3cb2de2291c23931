package main

import (
	"fmt"
	"io"
	"os"

	"git.lost.host/meutraa/eotj/internal/config"
	"git.lost.host/meutraa/eotj/internal/engine"
	"git.lost.host/meutraa/eotj/internal/game"
	"git.lost.host/meutraa/eotj/internal/logger"
	"git.lost.host/meutraa/eotj/internal/parser"
	"git.lost.host/meutraa/eotj/internal/score"
	"github.com/gruntwork-io/go-commons/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

// replayTickSec is the frame step used when a session is played without a
// screen.
const replayTickSec = 1.0 / 240

func main() {
	if err := run(os.Args[1:], os.Stdout); nil != err {
		logger.GetProjectLogger().Fatal(errors.PrintErrorWithStackTrace(err))
	}
}

func run(args []string, out io.Writer) error {
	app := kingpin.New("eotj", "Timing and judgment engine for line based rhythm charts.")
	flags := config.RegisterFlags(app)

	play := app.Command("play", "Play a chart in the terminal.")
	playChart := play.Arg("chart", "Chart file").Required().ExistingFile()
	playAudio := play.Flag("audio", "Song file (mp3, ogg or wav)").ExistingFile()

	auto := app.Command("auto", "Autoplay a chart and print the result.")
	autoChart := auto.Arg("chart", "Chart file").Required().ExistingFile()

	replay := app.Command("replay", "Replay the stored sessions of a chart.")
	replayChart := replay.Arg("chart", "Chart file").Required().ExistingFile()

	cmd, err := app.Parse(args)
	if nil != err {
		return err
	}
	cfg, err := flags.Resolve()
	if nil != err {
		return err
	}
	if err := logger.Configure(cfg.Log.Level, nil); nil != err {
		return err
	}
	log := logger.GetProjectLogger()

	switch cmd {
	case play.FullCommand():
		var store score.Store
		if !cfg.History.Disabled {
			s, err := score.Open(cfg.History.Path)
			if nil != err {
				return err
			}
			defer s.Close()
			store = s
		}
		result, err := NewProgram(cfg, store, log).Run(*playChart, *playAudio)
		if nil != err {
			return err
		}
		if result != nil {
			printResult(out, *result)
		}
	case auto.FullCommand():
		chart, err := (&parser.DefaultParser{}).Parse(*autoChart)
		if nil != err {
			return err
		}
		cfg.Judgement.Autoplay = true
		result, err := engine.Replay(chart, cfg, nil, replayTickSec)
		if nil != err {
			return err
		}
		printResult(out, result)
	case replay.FullCommand():
		return replayHistory(out, cfg, *replayChart)
	}
	return nil
}

func replayHistory(out io.Writer, cfg config.Config, chartFile string) error {
	chart, err := (&parser.DefaultParser{}).Parse(chartFile)
	if nil != err {
		return err
	}
	store, err := score.Open(cfg.History.Path)
	if nil != err {
		return err
	}
	defer store.Close()

	history, err := store.Load(chart)
	if nil != err {
		return err
	}
	if len(history) == 0 {
		fmt.Fprintf(out, "no stored sessions for %s\n", chartFile)
		return nil
	}
	for _, h := range history {
		result, err := engine.Replay(chart, cfg, h.Events, replayTickSec)
		if nil != err {
			return err
		}
		fmt.Fprintf(out, "%s  x%.2f  stored %07.0f %-4s  replayed ",
			h.PlayedAt.Format("2006-01-02 15:04"), h.Rate, h.Score, h.Grade)
		printResult(out, result)
	}
	return nil
}

func printResult(out io.Writer, r score.Result) {
	fmt.Fprintf(out, "%07.0f %-4s %6.2f%%  max combo %d/%d",
		r.Score, r.Grade, r.Accuracy*100, r.MaxCombo, r.Total)
	for _, v := range game.Verdicts {
		fmt.Fprintf(out, "  %s %d", v, r.Counts[v])
	}
	fmt.Fprintln(out)
}
