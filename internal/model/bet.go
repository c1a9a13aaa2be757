package model

import (
	"math"
	"time"
)

// BetType distinguishes single-fight bets from parlays.
type BetType string

const (
	BetStraight BetType = "straight"
	BetParlay   BetType = "parlay"
)

// Outcome is the result recorded for a bet.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// Valid reports whether o is a recognized outcome.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeWin, OutcomeLoss, OutcomeDraw:
		return true
	}
	return false
}

// Category is the promotion a bet was placed on.
type Category string

const (
	CategoryUFC      Category = "UFC"
	CategoryBellator Category = "Bellator"
	CategoryONE      Category = "ONE"
	CategoryPFL      Category = "PFL"
	CategoryOther    Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryUFC, CategoryBellator, CategoryONE, CategoryPFL, CategoryOther}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Status tracks whether a bet has been settled.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Tag labels the kind of bet (method of victory, props, ...).
type Tag string

const (
	TagKnockout     Tag = "knockout"
	TagSubmission   Tag = "submission"
	TagDecision     Tag = "decision"
	TagDistance     Tag = "distance"
	TagRoundBetting Tag = "round_betting"
	TagProp         Tag = "prop"
)

// Tags lists every tag in display order.
var Tags = []Tag{TagKnockout, TagSubmission, TagDecision, TagDistance, TagRoundBetting, TagProp}

func (t Tag) Valid() bool {
	for _, v := range Tags {
		if t == v {
			return true
		}
	}
	return false
}

// Fight is one matchup (leg) within a bet.
type Fight struct {
	Fighter1        string  `json:"fighter1"`
	Fighter2        string  `json:"fighter2"`
	SelectedFighter string  `json:"selectedFighter"`
	Odds            float64 `json:"odds"`
	Event           string  `json:"event"`
	ExpectedOutcome Tag     `json:"expectedOutcome,omitempty"`
	WeightClass     string  `json:"weightClass,omitempty"`
}

// Bet is one recorded wager. Only the ledger creates bets.
type Bet struct {
	ID         string     `json:"id"`
	Type       BetType    `json:"type"`
	Fights     []Fight    `json:"fights"`
	Outcome    Outcome    `json:"outcome"`
	Amount     float64    `json:"amount"`
	TotalOdds  float64    `json:"totalOdds"`
	Date       time.Time  `json:"date"`
	Category   Category   `json:"category"`
	Status     Status     `json:"status"`
	Tags       []Tag      `json:"tags"`
	Notes      string     `json:"notes,omitempty"`
	Units      *float64   `json:"units,omitempty"`
	OddsFormat OddsFormat `json:"oddsFormat"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// HasTag reports whether the bet carries tag t.
func (b *Bet) HasTag(t Tag) bool {
	for _, v := range b.Tags {
		if v == t {
			return true
		}
	}
	return false
}

// Countable reports whether the bet can take part in statistics: a recognized
// outcome and finite amount and odds.
func (b *Bet) Countable() bool {
	return b.Outcome.Valid() && finite(b.Amount) && finite(b.TotalOdds)
}

// BetDraft carries what the caller supplies when recording a bet. Identity,
// timestamps, total odds, units and the odds format snapshot are filled in by
// the ledger.
type BetDraft struct {
	Type     BetType
	Fights   []Fight
	Outcome  Outcome
	Amount   float64
	Date     time.Time
	Category Category
	Status   Status
	Tags     []Tag
	Notes    string
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
