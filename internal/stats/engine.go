package stats

import (
	"sort"

	"FightLedger/internal/calculator"
	"FightLedger/internal/model"
)

// Summary is the aggregate view over every countable bet.
type Summary struct {
	TotalBets   int     `json:"totalBets"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Draws       int     `json:"draws"`
	WinRate     float64 `json:"winRate"`
	TotalAmount float64 `json:"totalAmount"`
	Winnings    float64 `json:"winnings"`
	Profit      float64 `json:"profit"`
	ROI         float64 `json:"roi"`
	AverageBet  float64 `json:"averageBet"`

	BiggestWin        float64                    `json:"biggestWin"`
	BiggestLoss       float64                    `json:"biggestLoss"`
	CurrentStreak     int                        `json:"currentStreak"`
	LongestWinStreak  int                        `json:"longestWinStreak"`
	LongestLossStreak int                        `json:"longestLossStreak"`
	ProfitByCategory  map[model.Category]float64 `json:"profitByCategory"`
	WinRateByTag      map[model.Tag]float64      `json:"winRateByTag"`
}

// Countable filters bets down to those statistics can use: a recognized
// outcome and finite amount and odds. Order is preserved.
func Countable(bets []model.Bet) []model.Bet {
	out := make([]model.Bet, 0, len(bets))
	for _, b := range bets {
		if b.Countable() {
			out = append(out, b)
		}
	}
	return out
}

// NetResult is what a settled bet added to or took from the bankroll: the
// profit over the stake for a win, the stake for a loss, nothing for a draw.
func NetResult(b model.Bet) float64 {
	switch b.Outcome {
	case model.OutcomeWin:
		return b.Amount*b.TotalOdds - b.Amount
	case model.OutcomeLoss:
		return -b.Amount
	default:
		return 0
	}
}

// Compute aggregates bets. Invalid records are skipped; nothing is cached.
func Compute(bets []model.Bet) Summary {
	valid := Countable(bets)
	s := Summary{
		ProfitByCategory: make(map[model.Category]float64),
		WinRateByTag:     make(map[model.Tag]float64),
	}

	for _, b := range valid {
		s.TotalBets++
		s.TotalAmount += b.Amount
		switch b.Outcome {
		case model.OutcomeWin:
			s.Wins++
			s.Winnings += calculator.PotentialWinnings(b.Amount, b.TotalOdds)
		case model.OutcomeLoss:
			s.Losses++
		case model.OutcomeDraw:
			s.Draws++
		}

		net := NetResult(b)
		if net > s.BiggestWin {
			s.BiggestWin = net
		}
		if -net > s.BiggestLoss {
			s.BiggestLoss = -net
		}
		s.ProfitByCategory[b.Category] += net
	}

	if s.TotalBets > 0 {
		s.WinRate = float64(s.Wins) / float64(s.TotalBets) * 100
		s.AverageBet = s.TotalAmount / float64(s.TotalBets)
	}
	s.Profit = s.Winnings - s.TotalAmount
	s.ROI = calculator.ROI(s.Winnings, s.TotalAmount)

	s.CurrentStreak, s.LongestWinStreak, s.LongestLossStreak = streaks(byDate(valid))
	s.WinRateByTag = tagWinRates(valid)
	return s
}

// byDate returns a copy of bets stable-sorted by date, so bets sharing a date
// keep their insertion order.
func byDate(bets []model.Bet) []model.Bet {
	sorted := make([]model.Bet, len(bets))
	copy(sorted, bets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// streaks walks bets in date order. current is positive for a run of wins
// and negative for a run of losses; a draw ends any run.
func streaks(sorted []model.Bet) (current, longestWin, longestLoss int) {
	for _, b := range sorted {
		switch b.Outcome {
		case model.OutcomeWin:
			if current > 0 {
				current++
			} else {
				current = 1
			}
			longestWin = max(longestWin, current)
		case model.OutcomeLoss:
			if current < 0 {
				current--
			} else {
				current = -1
			}
			longestLoss = max(longestLoss, -current)
		default:
			current = 0
		}
	}
	return current, longestWin, longestLoss
}

func tagWinRates(bets []model.Bet) map[model.Tag]float64 {
	rates := make(map[model.Tag]float64)
	for _, tag := range model.Tags {
		var total, wins int
		for _, b := range bets {
			if !b.HasTag(tag) {
				continue
			}
			total++
			if b.Outcome == model.OutcomeWin {
				wins++
			}
		}
		if total > 0 {
			rates[tag] = float64(wins) / float64(total) * 100
		}
	}
	return rates
}
