package parser

import "git.lost.host/meutraa/eotj/internal/game"

type Parser interface {
	Parse(file string) (*game.Chart, error)
}
