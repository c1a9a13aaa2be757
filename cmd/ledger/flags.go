package main

import (
	"fmt"
	"strings"

	"FightLedger/internal/calculator"
	"FightLedger/internal/model"
)

// fightList collects repeated -fight flags. Odds stay as text until the
// ledger's odds format is known.
type fightList []string

func (f *fightList) String() string { return strings.Join(*f, ", ") }

func (f *fightList) Set(v string) error {
	*f = append(*f, v)
	return nil
}

// resolve parses each leg "fighter1|fighter2|pick|odds|event[|weight class]"
// with odds in format.
func (f fightList) resolve(format model.OddsFormat) ([]model.Fight, error) {
	fights := make([]model.Fight, 0, len(f))
	for i, raw := range f {
		parts := strings.Split(raw, "|")
		if len(parts) != 5 && len(parts) != 6 {
			return nil, fmt.Errorf("fight %d: want fighter1|fighter2|pick|odds|event[|weight class], got %q", i+1, raw)
		}
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}
		odds, err := calculator.ParseOdds(parts[3], format)
		if err != nil {
			return nil, fmt.Errorf("fight %d odds: %w", i+1, err)
		}
		fight := model.Fight{
			Fighter1:        parts[0],
			Fighter2:        parts[1],
			SelectedFighter: parts[2],
			Odds:            odds,
			Event:           parts[4],
		}
		if len(parts) == 6 {
			fight.WeightClass = parts[5]
		}
		fights = append(fights, fight)
	}
	return fights, nil
}
