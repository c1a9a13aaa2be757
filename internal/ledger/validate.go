package ledger

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"FightLedger/internal/model"
)

// ValidateDraft checks a draft before it is handed to Create and reports
// every problem found. Create itself trusts its input.
func ValidateDraft(d model.BetDraft) error {
	var errs []error

	switch d.Type {
	case model.BetStraight:
		if len(d.Fights) != 1 {
			errs = append(errs, fmt.Errorf("straight bet needs exactly one fight, got %d", len(d.Fights)))
		}
	case model.BetParlay:
		if len(d.Fights) == 0 {
			errs = append(errs, errors.New("parlay needs at least one fight"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown bet type %q", d.Type))
	}

	if !(d.Amount > 0) || math.IsInf(d.Amount, 0) {
		errs = append(errs, fmt.Errorf("amount must be positive, got %v", d.Amount))
	}

	for i, f := range d.Fights {
		leg := fmt.Sprintf("fight %d", i+1)
		if strings.TrimSpace(f.Fighter1) == "" || strings.TrimSpace(f.Fighter2) == "" {
			errs = append(errs, fmt.Errorf("%s: both fighter names are required", leg))
		}
		if f.SelectedFighter != f.Fighter1 && f.SelectedFighter != f.Fighter2 {
			errs = append(errs, fmt.Errorf("%s: pick %q is not one of the fighters", leg, f.SelectedFighter))
		}
		if !(f.Odds > 0) || math.IsInf(f.Odds, 0) {
			errs = append(errs, fmt.Errorf("%s: odds must be positive, got %v", leg, f.Odds))
		}
		if strings.TrimSpace(f.Event) == "" {
			errs = append(errs, fmt.Errorf("%s: event is required", leg))
		}
		if f.ExpectedOutcome != "" && !f.ExpectedOutcome.Valid() {
			errs = append(errs, fmt.Errorf("%s: unknown expected outcome %q", leg, f.ExpectedOutcome))
		}
	}

	if !d.Outcome.Valid() {
		errs = append(errs, fmt.Errorf("unknown outcome %q", d.Outcome))
	}
	if !d.Category.Valid() {
		errs = append(errs, fmt.Errorf("unknown category %q", d.Category))
	}
	if !d.Status.Valid() {
		errs = append(errs, fmt.Errorf("unknown status %q", d.Status))
	}
	for _, t := range d.Tags {
		if !t.Valid() {
			errs = append(errs, fmt.Errorf("unknown tag %q", t))
		}
	}
	if d.Date.IsZero() {
		errs = append(errs, errors.New("date is required"))
	}

	return errors.Join(errs...)
}

// BankrollWarnings lists bankroll rules a new stake of amount would break,
// given the profit recorded so far. Warnings do not block recording the bet.
func BankrollWarnings(amount float64, b model.Bankroll, profit float64) []string {
	var warnings []string
	if b.MaxBetSize > 0 && amount > b.MaxBetSize {
		warnings = append(warnings, fmt.Sprintf("stake %.2f exceeds max bet size %.2f", amount, b.MaxBetSize))
	}
	if b.TotalBankroll > 0 && amount > b.TotalBankroll+profit {
		warnings = append(warnings, fmt.Sprintf("stake %.2f exceeds current bankroll %.2f", amount, b.TotalBankroll+profit))
	}
	if b.StopLoss < 0 && profit <= b.StopLoss {
		warnings = append(warnings, fmt.Sprintf("stop-loss reached: profit %.2f <= %.2f", profit, b.StopLoss))
	}
	if b.StopWin > 0 && profit >= b.StopWin {
		warnings = append(warnings, fmt.Sprintf("stop-win reached: profit %.2f >= %.2f", profit, b.StopWin))
	}
	return warnings
}
