package calculator

import "FightLedger/internal/model"

// Kelly returns the Kelly fraction of bankroll to stake for win probability p
// at the given decimal odds, clamped to [0, 1]. Odds of 1 or less have no
// payout, so the fraction is 0.
func Kelly(p, decimalOdds float64) float64 {
	b := decimalOdds - 1 // net odds
	if b <= 0 {
		return 0
	}
	q := 1 - p
	kelly := (b*p - q) / b
	if kelly < 0 {
		return 0
	}
	if kelly > 1 {
		return 1
	}
	return kelly
}

// KellyCriterion is Kelly for odds given in any format.
func KellyCriterion(p float64, odds string, format model.OddsFormat) (float64, error) {
	d, err := ParseOdds(odds, format)
	if err != nil {
		return 0, err
	}
	return Kelly(p, d), nil
}

// KellyStake converts the Kelly fraction into a stake. fraction scales the
// full Kelly (0.5 for half Kelly); values outside (0, 1] mean full Kelly.
func KellyStake(bankroll, fraction, p, decimalOdds float64) float64 {
	if fraction <= 0 || fraction > 1 {
		fraction = 1
	}
	return bankroll * Kelly(p, decimalOdds) * fraction
}
