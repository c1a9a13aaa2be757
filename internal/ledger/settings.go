package ledger

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"FightLedger/internal/model"
)

// BankrollPatch changes the bankroll fields that are non-nil.
type BankrollPatch struct {
	TotalBankroll *float64
	UnitSize      *float64
	MaxBetSize    *float64
	StopLoss      *float64
	StopWin       *float64
}

// Settings returns the current settings.
func (s *Store) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetOddsFormat changes the format used for new bets.
func (s *Store) SetOddsFormat(f model.OddsFormat) error {
	if !f.Valid() {
		return fmt.Errorf("unknown odds format %q", f)
	}
	return s.updateSettings(func(next *model.Settings) {
		next.OddsFormat = f
	})
}

// UpdateBankroll applies p to the bankroll settings. Unit size must stay positive.
func (s *Store) UpdateBankroll(p BankrollPatch) error {
	if p.UnitSize != nil && *p.UnitSize <= 0 {
		return fmt.Errorf("unit size must be positive, got %v", *p.UnitSize)
	}
	return s.updateSettings(func(next *model.Settings) {
		b := &next.Bankroll
		if p.TotalBankroll != nil {
			b.TotalBankroll = *p.TotalBankroll
		}
		if p.UnitSize != nil {
			b.UnitSize = *p.UnitSize
		}
		if p.MaxBetSize != nil {
			b.MaxBetSize = *p.MaxBetSize
		}
		if p.StopLoss != nil {
			b.StopLoss = *p.StopLoss
		}
		if p.StopWin != nil {
			b.StopWin = *p.StopWin
		}
	})
}

func (s *Store) updateSettings(apply func(*model.Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings
	apply(&next)
	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.kv.Save(keySettings, data); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	s.settings = next
	s.log.Info("settings updated",
		zap.String("odds_format", string(next.OddsFormat)),
		zap.Float64("unit_size", next.Bankroll.UnitSize),
	)
	return nil
}
