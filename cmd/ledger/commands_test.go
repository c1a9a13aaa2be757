package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"go.uber.org/zap"

	"FightLedger/internal/config"
	"FightLedger/internal/ledger"
	"FightLedger/internal/model"
	"FightLedger/internal/storage"
)

func newTestCLI(t *testing.T) (*cli, *bytes.Buffer) {
	t.Helper()
	store, err := ledger.Open(storage.NewMemoryStore(), zap.NewNop())
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	out := &bytes.Buffer{}
	return &cli{store: store, out: out}, out
}

func TestAdd_Straight(t *testing.T) {
	c, out := newTestCLI(t)
	err := c.add([]string{
		"-fight", "Adesanya|Du Plessis|Adesanya|2.50|UFC 305",
		"-outcome", "win", "-amount", "40", "-date", "2024-08-18", "-tags", "knockout, decision",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.HasPrefix(out.String(), "recorded ") {
		t.Errorf("output = %q", out.String())
	}

	bets := c.store.Bets()
	if len(bets) != 1 {
		t.Fatalf("got %d bets", len(bets))
	}
	b := bets[0]
	if b.Type != model.BetStraight || b.TotalOdds != 2.5 || b.Category != model.CategoryUFC {
		t.Errorf("unexpected bet: %+v", b)
	}
	if len(b.Tags) != 2 || b.Tags[1] != model.TagDecision {
		t.Errorf("tags = %v", b.Tags)
	}
	if b.Date.Format("2006-01-02") != "2024-08-18" {
		t.Errorf("date = %v", b.Date)
	}
}

func TestAdd_ParlayInAmericanOdds(t *testing.T) {
	c, _ := newTestCLI(t)
	if err := c.store.SetOddsFormat(model.OddsAmerican); err != nil {
		t.Fatal(err)
	}
	err := c.add([]string{
		"-fight", "Jones|Miocic|Jones|-200|UFC 309",
		"-fight", "Oliveira|Chandler|Oliveira|+100|UFC 309",
		"-outcome", "loss", "-amount", "10",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b := c.store.Bets()[0]
	if b.Type != model.BetParlay {
		t.Errorf("type = %s, want parlay", b.Type)
	}
	// 1.5 * 2.0
	if b.TotalOdds != 3 {
		t.Errorf("totalOdds = %v, want 3", b.TotalOdds)
	}
	if b.OddsFormat != model.OddsAmerican {
		t.Errorf("oddsFormat = %s", b.OddsFormat)
	}
}

func TestAdd_RejectsInvalidDraft(t *testing.T) {
	c, _ := newTestCLI(t)
	err := c.add([]string{
		"-fight", "A|B|C|2.0|Event",
		"-outcome", "maybe", "-amount", "-5",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"amount", "pick", "outcome"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
	if len(c.store.Bets()) != 0 {
		t.Error("invalid draft must not be recorded")
	}

	if err := c.add([]string{"-fight", "A|B|A|2.0"}); err == nil {
		t.Error("expected error for malformed fight")
	}
}

func TestAdd_PrintsBankrollWarnings(t *testing.T) {
	c, out := newTestCLI(t)
	err := c.add([]string{"-fight", "A|B|A|1.8|Event", "-outcome", "win", "-amount", "150"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out.String(), "warning: stake 150.00 exceeds max bet size 100.00") {
		t.Errorf("output = %q", out.String())
	}
	if len(c.store.Bets()) != 1 {
		t.Error("warnings must not block recording")
	}
}

func TestListDeleteClear(t *testing.T) {
	c, out := newTestCLI(t)
	for _, outcome := range []string{"win", "loss"} {
		if err := c.add([]string{"-fight", "A|B|A|2.0|Event", "-outcome", outcome, "-amount", "10"}); err != nil {
			t.Fatal(err)
		}
	}
	id := c.store.Bets()[0].ID

	out.Reset()
	if err := c.list(nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), id) || !strings.Contains(out.String(), "+10.00") {
		t.Errorf("list output:\n%s", out.String())
	}

	if err := c.delete(nil); err == nil {
		t.Error("expected error without -id")
	}
	if err := c.delete([]string{"-id", id}); err != nil {
		t.Fatal(err)
	}
	if len(c.store.Bets()) != 1 {
		t.Errorf("got %d bets after delete", len(c.store.Bets()))
	}
	out.Reset()
	if err := c.delete([]string{"-id", id}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "no bet with id") {
		t.Errorf("output = %q", out.String())
	}

	if err := c.clear(nil); err == nil {
		t.Error("expected clear to require -yes")
	}
	if err := c.clear([]string{"-yes"}); err != nil {
		t.Fatal(err)
	}
	if len(c.store.Bets()) != 0 {
		t.Error("clear left bets behind")
	}
}

func TestStatsAndChart(t *testing.T) {
	c, out := newTestCLI(t)
	c.add([]string{"-fight", "A|B|A|2.0|Event", "-outcome", "win", "-amount", "100", "-date", "2024-01-01"})
	c.add([]string{"-fight", "A|B|A|1.5|Event", "-outcome", "loss", "-amount", "50", "-date", "2024-01-02"})

	out.Reset()
	if err := c.stats(nil); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"2 (W 1 / L 1 / D 0)", "+50.00", "50.0%"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("stats missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := c.chart(nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 || !strings.Contains(lines[2], "2024-01-02") || !strings.Contains(lines[2], "+50.00") {
		t.Errorf("chart output:\n%s", out.String())
	}
}

func TestSettings(t *testing.T) {
	c, out := newTestCLI(t)
	if err := c.settings([]string{"-format", "fractional", "-unit-size", "25", "-stop-loss", "-300"}); err != nil {
		t.Fatal(err)
	}
	st := c.store.Settings()
	if st.OddsFormat != model.OddsFractional || st.Bankroll.UnitSize != 25 || st.Bankroll.StopLoss != -300 {
		t.Errorf("settings = %+v", st)
	}
	if st.Bankroll.TotalBankroll != 1000 {
		t.Errorf("untouched field changed: %+v", st.Bankroll)
	}
	if !strings.Contains(out.String(), "fractional") {
		t.Errorf("output:\n%s", out.String())
	}

	if err := c.settings([]string{"-format", "moneyline"}); err == nil {
		t.Error("expected error for unknown format")
	}
	if err := c.settings([]string{"-unit-size", "0"}); err == nil {
		t.Error("expected error for zero unit size")
	}
}

func TestConvertAndKelly(t *testing.T) {
	tests := []struct {
		name string
		run  func([]string, *bytes.Buffer) error
		args []string
		want string
	}{
		{"decimal to american", wrap(cmdConvert), []string{"-value", "2.50", "-from", "decimal", "-to", "american"}, "+150 (implied probability 40.00%)"},
		{"american to fractional", wrap(cmdConvert), []string{"-value", "+150", "-from", "american", "-to", "fractional"}, "3/2"},
		{"full kelly", wrap(cmdKelly), []string{"-p", "0.6", "-odds", "2.0"}, "Kelly fraction: 0.2000"},
		{"half kelly stake", wrap(cmdKelly), []string{"-p", "0.6", "-odds", "+100", "-format", "american", "-fraction", "0.5", "-bankroll", "1000"}, "Stake: 100.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := tt.run(tt.args, &out); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output %q does not contain %q", out.String(), tt.want)
			}
		})
	}

	var out bytes.Buffer
	if err := cmdConvert([]string{"-value", "3-2", "-from", "fractional"}, &out); err == nil {
		t.Error("expected error for malformed fraction")
	}
	if err := cmdKelly([]string{"-p", "1.5", "-odds", "2"}, &out); err == nil {
		t.Error("expected error for probability above 1")
	}

	out.Reset()
	err := cmdKelly([]string{"-p", "0.6", "-odds", "x/2", "-format", "fractional", "-bankroll", "1000"}, &out)
	if err == nil {
		t.Error("expected error for unparsable odds with a bankroll")
	}
	if strings.Contains(out.String(), "Stake:") {
		t.Errorf("stake printed for unparsable odds: %q", out.String())
	}
}

func wrap(f func([]string, io.Writer) error) func([]string, *bytes.Buffer) error {
	return func(args []string, out *bytes.Buffer) error { return f(args, out) }
}

func TestRun_UnknownCommand(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Driver = "memory"
	var out bytes.Buffer
	err := run(context.Background(), cfg, zap.NewNop(), []string{"frobnicate"}, &out)
	if !errors.Is(err, errUsage) {
		t.Errorf("err = %v, want errUsage", err)
	}

	if err := run(context.Background(), cfg, zap.NewNop(), []string{"list"}, &out); err != nil {
		t.Errorf("list on empty memory store: %v", err)
	}
	if !strings.Contains(out.String(), "no bets recorded") {
		t.Errorf("output = %q", out.String())
	}
}
