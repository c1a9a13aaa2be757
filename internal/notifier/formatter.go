package notifier

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"FightLedger/internal/calculator"
	"FightLedger/internal/model"
	"FightLedger/internal/stats"
)

// FormatSummary formats the ledger aggregates into a Telegram message.
func FormatSummary(title string, s stats.Summary, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", html.EscapeString(title), now.Format("2006-01-02")))

	if s.TotalBets == 0 {
		b.WriteString("No settled bets yet.\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Bets: %d (W %d / L %d / D %d)\n", s.TotalBets, s.Wins, s.Losses, s.Draws))
	b.WriteString(fmt.Sprintf("Win rate: %.1f%%\n", s.WinRate))
	b.WriteString(fmt.Sprintf("Wagered: %.2f | Avg bet: %.2f\n", s.TotalAmount, s.AverageBet))
	b.WriteString(fmt.Sprintf("Profit: %+.2f | ROI: %+.1f%%\n\n", s.Profit, s.ROI))

	b.WriteString("📈 <b>Form:</b>\n")
	b.WriteString(fmt.Sprintf("  Current streak: %s\n", streakLabel(s.CurrentStreak)))
	b.WriteString(fmt.Sprintf("  Longest: %dW / %dL\n", s.LongestWinStreak, s.LongestLossStreak))
	b.WriteString(fmt.Sprintf("  Biggest win: %.2f | Biggest loss: %.2f\n", s.BiggestWin, s.BiggestLoss))

	var cats []string
	for _, c := range model.Categories {
		if p, ok := s.ProfitByCategory[c]; ok {
			cats = append(cats, fmt.Sprintf("  %s: %+.2f", c, p))
		}
	}
	if len(cats) > 0 {
		b.WriteString("\n🏟 <b>By promotion:</b>\n")
		b.WriteString(strings.Join(cats, "\n"))
		b.WriteString("\n")
	}

	return b.String()
}

func streakLabel(n int) string {
	switch {
	case n > 0:
		return fmt.Sprintf("%dW", n)
	case n < 0:
		return fmt.Sprintf("%dL", -n)
	default:
		return "-"
	}
}

// FormatRecent lists the n most recent bets by date, newest first. Odds are
// shown in format.
func FormatRecent(bets []model.Bet, n int, format model.OddsFormat) string {
	var b strings.Builder
	b.WriteString("🧾 <b>Recent bets</b>\n\n")

	if len(bets) == 0 {
		b.WriteString("No bets recorded.\n")
		return b.String()
	}

	sorted := make([]model.Bet, len(bets))
	copy(sorted, bets)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	for _, bet := range sorted {
		b.WriteString(FormatBetLine(bet, format))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatBetLine renders one bet on a single line.
func FormatBetLine(bet model.Bet, format model.OddsFormat) string {
	picks := make([]string, 0, len(bet.Fights))
	for _, f := range bet.Fights {
		picks = append(picks, html.EscapeString(f.SelectedFighter))
	}

	odds, err := calculator.FormatOdds(bet.TotalOdds, format)
	if err != nil {
		odds = "?"
	}

	result := string(bet.Outcome)
	if bet.Countable() {
		result = fmt.Sprintf("%s %+.2f", bet.Outcome, stats.NetResult(bet))
	} else if result == "" {
		result = "invalid"
	}

	date := "----------"
	if !bet.Date.IsZero() {
		date = bet.Date.Format(stats.DateLabelLayout)
	}

	return fmt.Sprintf("%s %s %s @ %s, %.2f → %s",
		date, bet.Type, strings.Join(picks, " + "), odds, bet.Amount, result)
}

// FormatBankroll formats the bankroll rules and where the ledger stands against them.
func FormatBankroll(st model.Settings, s stats.Summary) string {
	br := st.Bankroll
	var b strings.Builder
	b.WriteString("💰 <b>Bankroll</b>\n\n")
	b.WriteString(fmt.Sprintf("Starting bankroll: %.2f\n", br.TotalBankroll))
	b.WriteString(fmt.Sprintf("Current bankroll: %.2f (%+.2f)\n", br.TotalBankroll+s.Profit, s.Profit))
	b.WriteString(fmt.Sprintf("Unit size: %.2f | Max bet: %.2f\n", br.UnitSize, br.MaxBetSize))
	b.WriteString(fmt.Sprintf("Stop-loss: %.2f | Stop-win: %.2f\n", br.StopLoss, br.StopWin))
	b.WriteString(fmt.Sprintf("Odds format: %s\n", st.OddsFormat))
	return b.String()
}

// FormatAlert formats bankroll warnings. Returns "" when there are none.
func FormatAlert(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("⚠️ <b>Bankroll alert</b>\n\n")
	for _, w := range warnings {
		b.WriteString("• ")
		b.WriteString(html.EscapeString(w))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatHelp formats the help message listing available commands.
func FormatHelp() string {
	return "🤖 <b>FightLedger commands</b>\n\n" +
		"/stats - overall record, profit and ROI\n" +
		"/recent [n] - last n bets (default 5)\n" +
		"/bankroll - bankroll rules and current balance\n" +
		"/help - this message\n"
}
