package notifier

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"FightLedger/internal/model"
	"FightLedger/internal/stats"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func bet(id string, d int, outcome model.Outcome, amount, odds float64) model.Bet {
	return model.Bet{
		ID:        id,
		Type:      model.BetStraight,
		Fights:    []model.Fight{{Fighter1: "Pereira", Fighter2: "Hill", SelectedFighter: "Pereira", Odds: odds, Event: "UFC 300"}},
		Outcome:   outcome,
		Amount:    amount,
		TotalOdds: odds,
		Date:      day(d),
		Category:  model.CategoryUFC,
		Status:    model.StatusCompleted,
	}
}

func TestFormatSummary(t *testing.T) {
	s := stats.Compute([]model.Bet{
		bet("a", 1, model.OutcomeWin, 100, 2.0),
		bet("b", 2, model.OutcomeLoss, 50, 1.5),
	})
	msg := FormatSummary("Daily digest", s, day(3))

	for _, want := range []string{
		"Daily digest</b> | 2024-03-03",
		"Bets: 2 (W 1 / L 1 / D 0)",
		"Win rate: 50.0%",
		"Profit: +50.00",
		"Current streak: 1L",
		"UFC: +50.00",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("summary missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatSummary_Empty(t *testing.T) {
	msg := FormatSummary("Weekly digest", stats.Compute(nil), day(3))
	if !strings.Contains(msg, "No settled bets yet") {
		t.Errorf("unexpected empty summary: %s", msg)
	}
}

func TestFormatRecent_NewestFirstAndLimited(t *testing.T) {
	bets := []model.Bet{
		bet("old", 1, model.OutcomeWin, 100, 2.0),
		bet("new", 5, model.OutcomeLoss, 40, 1.8),
		bet("mid", 3, model.OutcomeDraw, 10, 3.0),
	}
	msg := FormatRecent(bets, 2, model.OddsDecimal)

	lines := strings.Split(strings.TrimSpace(msg), "\n")
	// header, blank, two bets
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), msg)
	}
	if !strings.HasPrefix(lines[2], "2024-03-05") || !strings.HasPrefix(lines[3], "2024-03-03") {
		t.Errorf("wrong order:\n%s", msg)
	}
	if strings.Contains(msg, "2024-03-01") {
		t.Error("limit not applied")
	}
}

func TestFormatBetLine(t *testing.T) {
	b := bet("a", 1, model.OutcomeWin, 100, 2.5)
	if got := FormatBetLine(b, model.OddsAmerican); !strings.Contains(got, "@ +150") || !strings.Contains(got, "win +150.00") {
		t.Errorf("american line = %q", got)
	}

	b.Fights[0].SelectedFighter = "<script>"
	if got := FormatBetLine(b, model.OddsDecimal); strings.Contains(got, "<script>") {
		t.Errorf("fighter name not escaped: %q", got)
	}

	broken := bet("x", 1, "", math.NaN(), 2.0)
	if got := FormatBetLine(broken, model.OddsDecimal); !strings.Contains(got, "invalid") {
		t.Errorf("invalid bet line = %q", got)
	}
}

func TestFormatBetLine_LongParlayFractional(t *testing.T) {
	b := bet("p", 1, model.OutcomeLoss, 5, math.Pow(5.3, 12))
	b.Type = model.BetParlay
	got := FormatBetLine(b, model.OddsFractional)
	if strings.Contains(got, "@ ?") || !strings.Contains(got, "/") {
		t.Errorf("fractional parlay line = %q", got)
	}
}

func TestFormatBankroll(t *testing.T) {
	st := model.DefaultSettings()
	msg := FormatBankroll(st, stats.Summary{Profit: -120})
	if !strings.Contains(msg, "Current bankroll: 880.00 (-120.00)") {
		t.Errorf("bankroll message:\n%s", msg)
	}
}

func TestFormatAlert(t *testing.T) {
	if FormatAlert(nil) != "" {
		t.Error("expected empty alert without warnings")
	}
	msg := FormatAlert([]string{"stop-loss reached: profit -250.00 <= -200.00"})
	if !strings.Contains(msg, "stop-loss reached") {
		t.Errorf("alert = %q", msg)
	}
}

type flakySender struct {
	failures int
	calls    int
	sent     []string
}

func (f *flakySender) Send(text string) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("telegram unavailable")
	}
	f.sent = append(f.sent, text)
	return nil
}

func TestSendWithRetry(t *testing.T) {
	log := zap.NewNop()

	s := &flakySender{failures: 2}
	if err := sendWithRetry(context.Background(), s, "hi", 3, time.Millisecond, log); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.calls != 3 || len(s.sent) != 1 {
		t.Errorf("calls = %d, sent = %v", s.calls, s.sent)
	}

	s = &flakySender{failures: 10}
	if err := sendWithRetry(context.Background(), s, "hi", 2, time.Millisecond, log); err == nil {
		t.Error("expected error after exhausting retries")
	}
	if s.calls != 3 {
		t.Errorf("calls = %d, want 3", s.calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s = &flakySender{failures: 10}
	if err := sendWithRetry(ctx, s, "hi", 5, time.Hour, log); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
