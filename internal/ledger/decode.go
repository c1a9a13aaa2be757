package ledger

import (
	"encoding/json"
	"fmt"

	"FightLedger/internal/model"
	"FightLedger/internal/storage"
)

const (
	keyBets        = "bets"
	keySettings    = "settings"
	keyCorruptBets = "bets.corrupt"
)

// decodeBets parses the persisted collection. Individual records are decoded
// leniently by model.Bet; only a document that is not an array of objects fails.
func decodeBets(data []byte) ([]model.Bet, error) {
	var bets []model.Bet
	if err := json.Unmarshal(data, &bets); err != nil {
		return nil, fmt.Errorf("decode bets: %w", err)
	}
	return bets, nil
}

// storedSettings mirrors model.Settings with every field optional so missing
// or mistyped values can be told apart from zeros.
type storedSettings struct {
	OddsFormat *string `json:"oddsFormat"`
	Bankroll   *struct {
		TotalBankroll *float64 `json:"totalBankroll"`
		UnitSize      *float64 `json:"unitSize"`
		MaxBetSize    *float64 `json:"maxBetSize"`
		StopLoss      *float64 `json:"stopLoss"`
		StopWin       *float64 `json:"stopWin"`
	} `json:"bankroll"`
}

// decodeSettings overlays the persisted record onto the defaults field by
// field. A field that is absent or out of range keeps its default.
func decodeSettings(data []byte) (model.Settings, error) {
	s := model.DefaultSettings()
	var raw storedSettings
	if err := json.Unmarshal(data, &raw); err != nil {
		return s, fmt.Errorf("decode settings: %w", err)
	}
	if raw.OddsFormat != nil && model.OddsFormat(*raw.OddsFormat).Valid() {
		s.OddsFormat = model.OddsFormat(*raw.OddsFormat)
	}
	if b := raw.Bankroll; b != nil {
		if b.TotalBankroll != nil {
			s.Bankroll.TotalBankroll = *b.TotalBankroll
		}
		if b.UnitSize != nil && *b.UnitSize > 0 {
			s.Bankroll.UnitSize = *b.UnitSize
		}
		if b.MaxBetSize != nil && *b.MaxBetSize > 0 {
			s.Bankroll.MaxBetSize = *b.MaxBetSize
		}
		if b.StopLoss != nil {
			s.Bankroll.StopLoss = *b.StopLoss
		}
		if b.StopWin != nil {
			s.Bankroll.StopWin = *b.StopWin
		}
	}
	return s, nil
}

func loadKey(kv storage.Store, key string) ([]byte, bool, error) {
	data, ok, err := kv.Load(key)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	return data, ok, nil
}
