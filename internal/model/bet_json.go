package model

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

type betAlias Bet

// MarshalJSON writes non-finite amounts and odds as null, which encoding/json
// would otherwise refuse.
func (b Bet) MarshalJSON() ([]byte, error) {
	aux := struct {
		betAlias
		Amount    *float64 `json:"amount"`
		TotalOdds *float64 `json:"totalOdds"`
	}{
		betAlias:  betAlias(b),
		Amount:    finitePtr(b.Amount),
		TotalOdds: finitePtr(b.TotalOdds),
	}
	return json.Marshal(aux)
}

// UnmarshalJSON decodes amount, totalOdds and date leniently. A value of the
// wrong shape does not reject the record: numbers become NaN and the date
// becomes the zero time, so the bet is kept but excluded from statistics.
func (b *Bet) UnmarshalJSON(data []byte) error {
	aux := struct {
		*betAlias
		Amount    json.RawMessage `json:"amount"`
		TotalOdds json.RawMessage `json:"totalOdds"`
		Date      json.RawMessage `json:"date"`
	}{betAlias: (*betAlias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	b.Amount = lenientFloat(aux.Amount)
	b.TotalOdds = lenientFloat(aux.TotalOdds)
	b.Date = lenientTime(aux.Date)
	return nil
}

func finitePtr(f float64) *float64 {
	if !finite(f) {
		return nil
	}
	return &f
}

func lenientFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return math.NaN()
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return math.NaN()
}

func lenientTime(raw json.RawMessage) time.Time {
	var t time.Time
	if len(raw) == 0 {
		return t
	}
	if err := json.Unmarshal(raw, &t); err != nil {
		return time.Time{}
	}
	return t
}
