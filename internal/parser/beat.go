package parser

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// beat is a chart position written either as a number of beats or as the
// triple [whole, numerator, denominator].
type beat struct {
	Whole, Num, Den float64
}

func (b beat) value() (float64, error) {
	if b.Den == 0 {
		if b.Num != 0 {
			return 0, fmt.Errorf("beat [%v, %v, %v] has a zero denominator", b.Whole, b.Num, b.Den)
		}
		return b.Whole, nil
	}
	return b.Whole + b.Num/b.Den, nil
}

func (b *beat) set(parts []float64) error {
	if len(parts) != 3 {
		return fmt.Errorf("beat needs 3 parts, got %d", len(parts))
	}
	b.Whole, b.Num, b.Den = parts[0], parts[1], parts[2]
	return nil
}

func (b *beat) UnmarshalJSON(data []byte) error {
	var whole float64
	if err := json.Unmarshal(data, &whole); nil == err {
		*b = beat{Whole: whole}
		return nil
	}
	var parts []float64
	if err := json.Unmarshal(data, &parts); nil != err {
		return err
	}
	return b.set(parts)
}

func (b *beat) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var whole float64
		if err := node.Decode(&whole); nil != err {
			return err
		}
		*b = beat{Whole: whole}
		return nil
	}
	var parts []float64
	if err := node.Decode(&parts); nil != err {
		return err
	}
	return b.set(parts)
}
