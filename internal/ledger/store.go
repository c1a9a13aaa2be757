package ledger

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"FightLedger/internal/calculator"
	"FightLedger/internal/model"
	"FightLedger/internal/storage"
)

// Store owns the bet collection and the settings record. It loads both on
// Open and writes the full value back after every mutation. All methods are
// safe for concurrent use; a mutation and its write happen under one lock.
type Store struct {
	mu       sync.Mutex
	kv       storage.Store
	log      *zap.Logger
	bets     []model.Bet
	settings model.Settings

	now   func() time.Time
	newID func() (string, error)
}

// Open hydrates a Store from kv. Missing keys start empty or with default
// settings; documents that do not parse are logged and replaced by the same
// defaults. Only a failing backend read is returned as an error.
func Open(kv storage.Store, log *zap.Logger) (*Store, error) {
	s := &Store{
		kv:       kv,
		log:      log,
		bets:     []model.Bet{},
		settings: model.DefaultSettings(),
		now:      time.Now,
		newID:    newUUID,
	}

	data, ok, err := loadKey(kv, keyBets)
	if err != nil {
		return nil, err
	}
	if ok {
		bets, err := decodeBets(data)
		if err != nil {
			log.Warn("persisted bets unreadable, starting empty", zap.Error(err))
			if err := kv.Save(keyCorruptBets, data); err != nil {
				log.Error("failed to back up unreadable bets", zap.Error(err))
			}
		} else if bets != nil {
			s.bets = bets
		}
	}

	data, ok, err = loadKey(kv, keySettings)
	if err != nil {
		return nil, err
	}
	if ok {
		settings, err := decodeSettings(data)
		if err != nil {
			log.Warn("persisted settings unreadable, using defaults", zap.Error(err))
		}
		s.settings = settings
	}

	log.Info("ledger loaded",
		zap.Int("bets", len(s.bets)),
		zap.String("odds_format", string(s.settings.OddsFormat)),
	)
	return s, nil
}

func newUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Create records a new bet from draft. It assigns the id and timestamps,
// derives total odds from the legs and snapshots the odds format and unit
// count from the current settings. The draft is not validated.
func (s *Store) Create(d model.BetDraft) (model.Bet, error) {
	id, err := s.newID()
	if err != nil {
		return model.Bet{}, fmt.Errorf("generate bet id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	bet := model.Bet{
		ID:         id,
		Type:       d.Type,
		Fights:     append([]model.Fight(nil), d.Fights...),
		Outcome:    d.Outcome,
		Amount:     d.Amount,
		TotalOdds:  totalOdds(d.Type, d.Fights),
		Date:       d.Date,
		Category:   d.Category,
		Status:     d.Status,
		Tags:       append([]model.Tag{}, d.Tags...),
		Notes:      d.Notes,
		OddsFormat: s.settings.OddsFormat,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if unit := s.settings.Bankroll.UnitSize; unit > 0 {
		units := d.Amount / unit
		bet.Units = &units
	}

	next := make([]model.Bet, len(s.bets), len(s.bets)+1)
	copy(next, s.bets)
	next = append(next, bet)
	if err := s.saveBets(next); err != nil {
		return model.Bet{}, err
	}
	s.bets = next

	s.log.Info("bet recorded",
		zap.String("id", bet.ID),
		zap.String("type", string(bet.Type)),
		zap.Float64("amount", bet.Amount),
		zap.Float64("total_odds", bet.TotalOdds),
	)
	return bet, nil
}

// totalOdds is the single leg's odds for a straight bet and the compounded
// odds of every leg otherwise.
func totalOdds(t model.BetType, fights []model.Fight) float64 {
	if t == model.BetStraight && len(fights) > 0 {
		return fights[0].Odds
	}
	legs := make([]float64, len(fights))
	for i, f := range fights {
		legs[i] = f.Odds
	}
	return calculator.ParlayOdds(legs)
}

// Delete removes the bet with id. An unknown id is not an error and causes no write.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.bets {
		if s.bets[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	next := make([]model.Bet, 0, len(s.bets)-1)
	next = append(next, s.bets[:idx]...)
	next = append(next, s.bets[idx+1:]...)
	if err := s.saveBets(next); err != nil {
		return err
	}
	s.bets = next
	s.log.Info("bet deleted", zap.String("id", id))
	return nil
}

// Clear removes every bet.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := []model.Bet{}
	if err := s.saveBets(next); err != nil {
		return err
	}
	removed := len(s.bets)
	s.bets = next
	s.log.Info("bets cleared", zap.Int("removed", removed))
	return nil
}

// Bets returns the collection in insertion order, including records that
// statistics skip.
func (s *Store) Bets() []model.Bet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Bet, len(s.bets))
	copy(out, s.bets)
	return out
}

// Get returns the bet with id.
func (s *Store) Get(id string) (model.Bet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bets {
		if b.ID == id {
			return b, true
		}
	}
	return model.Bet{}, false
}

func (s *Store) saveBets(bets []model.Bet) error {
	data, err := json.MarshalIndent(bets, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bets: %w", err)
	}
	if err := s.kv.Save(keyBets, data); err != nil {
		return fmt.Errorf("persist bets: %w", err)
	}
	return nil
}
