package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"FightLedger/internal/calculator"
	"FightLedger/internal/ledger"
	"FightLedger/internal/model"
	"FightLedger/internal/stats"
)

// cli runs the ledger subcommands against one open store.
type cli struct {
	store *ledger.Store
	out   io.Writer
}

func (c *cli) commands() map[string]func([]string) error {
	return map[string]func([]string) error{
		"add":      c.add,
		"list":     c.list,
		"delete":   c.delete,
		"clear":    c.clear,
		"stats":    c.stats,
		"chart":    c.chart,
		"settings": c.settings,
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (c *cli) add(args []string) error {
	fs := newFlagSet("add")
	var fights fightList
	fs.Var(&fights, "fight", `leg as "fighter1|fighter2|pick|odds|event[|weight class]", repeat for parlays`)
	betType := fs.String("type", "", "straight or parlay (default: by number of legs)")
	outcome := fs.String("outcome", "", "win, loss or draw")
	amount := fs.Float64("amount", 0, "stake")
	date := fs.String("date", "", "event date, YYYY-MM-DD or RFC3339 (default: today)")
	category := fs.String("category", string(model.CategoryUFC), "UFC, Bellator, ONE, PFL or Other")
	status := fs.String("status", string(model.StatusCompleted), "pending or completed")
	tags := fs.String("tags", "", "comma separated tags")
	notes := fs.String("notes", "", "free text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings := c.store.Settings()
	legs, err := fights.resolve(settings.OddsFormat)
	if err != nil {
		return err
	}

	when := time.Now().UTC().Truncate(24 * time.Hour)
	if *date != "" {
		if when, err = parseDate(*date); err != nil {
			return err
		}
	}

	draft := model.BetDraft{
		Type:     model.BetType(*betType),
		Fights:   legs,
		Outcome:  model.Outcome(*outcome),
		Amount:   *amount,
		Date:     when,
		Category: model.Category(*category),
		Status:   model.Status(*status),
		Tags:     parseTags(*tags),
		Notes:    *notes,
	}
	if draft.Type == "" {
		draft.Type = model.BetStraight
		if len(legs) > 1 {
			draft.Type = model.BetParlay
		}
	}

	if err := ledger.ValidateDraft(draft); err != nil {
		return fmt.Errorf("invalid bet:\n%w", err)
	}

	profit := stats.Compute(c.store.Bets()).Profit
	for _, w := range ledger.BankrollWarnings(draft.Amount, settings.Bankroll, profit) {
		fmt.Fprintf(c.out, "warning: %s\n", w)
	}

	bet, err := c.store.Create(draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "recorded %s\n", bet.ID)
	return nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(stats.DateLabelLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}

func parseTags(s string) []model.Tag {
	var tags []model.Tag
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, model.Tag(p))
		}
	}
	return tags
}

func (c *cli) list(args []string) error {
	fs := newFlagSet("list")
	asJSON := fs.Bool("json", false, "print raw JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bets := c.store.Bets()
	if *asJSON {
		return writeJSON(c.out, bets)
	}
	if len(bets) == 0 {
		fmt.Fprintln(c.out, "no bets recorded")
		return nil
	}

	format := c.store.Settings().OddsFormat
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tPICKS\tODDS\tSTAKE\tOUTCOME\tNET")
	for _, b := range bets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f\t%s\t%s\n",
			b.ID, dateLabel(b.Date), b.Type, picks(b), oddsLabel(b.TotalOdds, format),
			b.Amount, outcomeLabel(b), netLabel(b))
	}
	return tw.Flush()
}

func dateLabel(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(stats.DateLabelLayout)
}

func picks(b model.Bet) string {
	names := make([]string, 0, len(b.Fights))
	for _, f := range b.Fights {
		names = append(names, f.SelectedFighter)
	}
	return strings.Join(names, " + ")
}

func oddsLabel(d float64, format model.OddsFormat) string {
	s, err := calculator.FormatOdds(d, format)
	if err != nil {
		return "?"
	}
	return s
}

func outcomeLabel(b model.Bet) string {
	if b.Outcome == "" {
		return "-"
	}
	return string(b.Outcome)
}

func netLabel(b model.Bet) string {
	if !b.Countable() {
		return "invalid"
	}
	return fmt.Sprintf("%+.2f", stats.NetResult(b))
}

func (c *cli) delete(args []string) error {
	fs := newFlagSet("delete")
	id := fs.String("id", "", "bet id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}
	if _, ok := c.store.Get(*id); !ok {
		fmt.Fprintf(c.out, "no bet with id %s\n", *id)
		return nil
	}
	if err := c.store.Delete(*id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "deleted %s\n", *id)
	return nil
}

func (c *cli) clear(args []string) error {
	fs := newFlagSet("clear")
	yes := fs.Bool("yes", false, "confirm deleting every bet")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*yes {
		return errors.New("refusing to delete every bet without -yes")
	}
	n := len(c.store.Bets())
	if err := c.store.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "deleted %d bets\n", n)
	return nil
}

func (c *cli) stats(args []string) error {
	fs := newFlagSet("stats")
	asJSON := fs.Bool("json", false, "print raw JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := stats.Compute(c.store.Bets())
	if *asJSON {
		return writeJSON(c.out, s)
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Bets\t%d (W %d / L %d / D %d)\n", s.TotalBets, s.Wins, s.Losses, s.Draws)
	fmt.Fprintf(tw, "Win rate\t%.1f%%\n", s.WinRate)
	fmt.Fprintf(tw, "Wagered\t%.2f\n", s.TotalAmount)
	fmt.Fprintf(tw, "Winnings\t%.2f\n", s.Winnings)
	fmt.Fprintf(tw, "Profit\t%+.2f\n", s.Profit)
	fmt.Fprintf(tw, "ROI\t%+.1f%%\n", s.ROI)
	fmt.Fprintf(tw, "Average bet\t%.2f\n", s.AverageBet)
	fmt.Fprintf(tw, "Biggest win / loss\t%.2f / %.2f\n", s.BiggestWin, s.BiggestLoss)
	fmt.Fprintf(tw, "Current streak\t%+d\n", s.CurrentStreak)
	fmt.Fprintf(tw, "Longest streaks\t%dW / %dL\n", s.LongestWinStreak, s.LongestLossStreak)
	for _, cat := range model.Categories {
		if p, ok := s.ProfitByCategory[cat]; ok {
			fmt.Fprintf(tw, "Profit %s\t%+.2f\n", cat, p)
		}
	}
	for _, tag := range model.Tags {
		if r, ok := s.WinRateByTag[tag]; ok {
			fmt.Fprintf(tw, "Win rate %s\t%.1f%%\n", tag, r)
		}
	}
	return tw.Flush()
}

func (c *cli) chart(args []string) error {
	fs := newFlagSet("chart")
	asJSON := fs.Bool("json", false, "print raw JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	points := stats.CumulativeProfit(c.store.Bets())
	if *asJSON {
		return writeJSON(c.out, points)
	}
	if len(points) == 0 {
		fmt.Fprintln(c.out, "no settled bets")
		return nil
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DATE\tNET\tCUMULATIVE\t")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%+.2f\t%+.2f\t\n", p.Label, p.Net, p.Cumulative)
	}
	return tw.Flush()
}

func (c *cli) settings(args []string) error {
	fs := newFlagSet("settings")
	format := fs.String("format", "", "odds format: decimal, american or fractional")
	bankroll := fs.Float64("bankroll", 0, "total bankroll")
	unit := fs.Float64("unit-size", 0, "unit size")
	maxBet := fs.Float64("max-bet", 0, "max bet size")
	stopLoss := fs.Float64("stop-loss", 0, "stop-loss (negative profit)")
	stopWin := fs.Float64("stop-win", 0, "stop-win")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var patch ledger.BankrollPatch
	changed := false
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bankroll":
			patch.TotalBankroll = bankroll
		case "unit-size":
			patch.UnitSize = unit
		case "max-bet":
			patch.MaxBetSize = maxBet
		case "stop-loss":
			patch.StopLoss = stopLoss
		case "stop-win":
			patch.StopWin = stopWin
		default:
			return
		}
		changed = true
	})

	if *format != "" {
		if err := c.store.SetOddsFormat(model.OddsFormat(*format)); err != nil {
			return err
		}
	}
	if changed {
		if err := c.store.UpdateBankroll(patch); err != nil {
			return err
		}
	}

	st := c.store.Settings()
	b := st.Bankroll
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Odds format\t%s\n", st.OddsFormat)
	fmt.Fprintf(tw, "Bankroll\t%.2f\n", b.TotalBankroll)
	fmt.Fprintf(tw, "Unit size\t%.2f\n", b.UnitSize)
	fmt.Fprintf(tw, "Max bet\t%.2f\n", b.MaxBetSize)
	fmt.Fprintf(tw, "Stop-loss\t%.2f\n", b.StopLoss)
	fmt.Fprintf(tw, "Stop-win\t%.2f\n", b.StopWin)
	return tw.Flush()
}

func cmdConvert(args []string, out io.Writer) error {
	fs := newFlagSet("convert")
	value := fs.String("value", "", `odds text, e.g. "2.50", "+150", "3/2"`)
	from := fs.String("from", string(model.OddsDecimal), "input format")
	to := fs.String("to", string(model.OddsAmerican), "output format")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *value == "" {
		return errors.New("-value is required")
	}

	converted, err := calculator.ConvertOdds(*value, model.OddsFormat(*from), model.OddsFormat(*to))
	if err != nil {
		return err
	}
	p, err := calculator.WinProbability(*value, model.OddsFormat(*from))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (implied probability %.2f%%)\n", converted, p*100)
	return nil
}

func cmdKelly(args []string, out io.Writer) error {
	fs := newFlagSet("kelly")
	p := fs.Float64("p", 0, "estimated win probability, 0-1")
	odds := fs.String("odds", "", "odds text")
	format := fs.String("format", string(model.OddsDecimal), "odds format")
	fraction := fs.Float64("fraction", 1, "Kelly multiplier, e.g. 0.5 for half Kelly")
	bankroll := fs.Float64("bankroll", 0, "bankroll to size the stake against")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *odds == "" {
		return errors.New("-odds is required")
	}
	if *p < 0 || *p > 1 {
		return fmt.Errorf("-p must be between 0 and 1, got %v", *p)
	}

	if *fraction <= 0 || *fraction > 1 {
		return fmt.Errorf("-fraction must be in (0, 1], got %v", *fraction)
	}

	d, err := calculator.ParseOdds(*odds, model.OddsFormat(*format))
	if err != nil {
		return err
	}
	f := calculator.Kelly(*p, d) * *fraction
	fmt.Fprintf(out, "Kelly fraction: %.4f (%.2f%% of bankroll)\n", f, f*100)
	if *bankroll > 0 {
		fmt.Fprintf(out, "Stake: %.2f\n", calculator.KellyStake(*bankroll, *fraction, *p, d))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
