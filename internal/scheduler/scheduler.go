package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"FightLedger/internal/ledger"
	"FightLedger/internal/metrics"
	"FightLedger/internal/model"
	"FightLedger/internal/notifier"
	"FightLedger/internal/stats"
)

const (
	metricsRefreshCron = "0 * * * * *"
	defaultRecent      = 5
	maxRecent          = 50
)

// Notifier delivers scheduled messages.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks and answers chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Ledger   *ledger.Store
	Notifier Notifier
	Metrics  *metrics.Metrics // optional
	Log      *zap.Logger
	Ctx      context.Context

	now func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, store *ledger.Store, n Notifier, m *metrics.Metrics, log *zap.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Ledger:   store,
		Notifier: n,
		Metrics:  m,
		Log:      log,
		Ctx:      ctx,
		now:      time.Now,
	}
}

// RegisterAll registers the daily and weekly digests and the metrics refresh.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	if s.Metrics != nil {
		if _, err := s.Cron.AddFunc(metricsRefreshCron, s.RefreshMetrics); err != nil {
			return fmt.Errorf("register metrics refresh: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started", zap.Int("jobs", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info("scheduler stopped")
}

// RefreshMetrics recomputes the summary and publishes it to the gauges.
func (s *Scheduler) RefreshMetrics() {
	if s.Metrics == nil {
		return
	}
	s.Metrics.Update(stats.Compute(s.Ledger.Bets()))
}

// dailyTask sends a digest of the last day's bets, if any, and checks the
// bankroll limits.
func (s *Scheduler) dailyTask() {
	s.Log.Info("running daily task")
	s.RefreshMetrics()

	bets := s.Ledger.Bets()
	if recent := since(bets, s.now().Add(-24*time.Hour)); len(recent) > 0 {
		s.trySend(notifier.FormatSummary("Daily digest", stats.Compute(recent), s.now()))
	}
	s.checkBankroll(bets)
}

// weeklyTask sends the last seven days next to the all-time record.
func (s *Scheduler) weeklyTask() {
	s.Log.Info("running weekly task")
	bets := s.Ledger.Bets()
	week := stats.Compute(since(bets, s.now().AddDate(0, 0, -7)))
	all := stats.Compute(bets)

	report := notifier.FormatSummary("Weekly digest", week, s.now()) +
		"\n" + notifier.FormatSummary("All time", all, s.now())
	s.trySend(report)
}

// checkBankroll alerts when the recorded profit has crossed the stop-loss or
// stop-win line, or the bankroll is exhausted.
func (s *Scheduler) checkBankroll(bets []model.Bet) {
	summary := stats.Compute(bets)
	warnings := ledger.BankrollWarnings(0, s.Ledger.Settings().Bankroll, summary.Profit)
	if alert := notifier.FormatAlert(warnings); alert != "" {
		s.Log.Warn("bankroll limits reached", zap.Strings("warnings", warnings))
		s.trySend(alert)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return notifier.FormatHelp()
	}
	// Telegram appends @botname to commands in group chats.
	name := strings.ToLower(parts[0])
	if i := strings.IndexByte(name, '@'); i > 0 {
		name = name[:i]
	}

	switch name {
	case "/stats":
		return notifier.FormatSummary("FightLedger", stats.Compute(s.Ledger.Bets()), s.now())
	case "/recent":
		n := defaultRecent
		if len(parts) > 1 {
			if v, err := strconv.Atoi(parts[1]); err == nil && v > 0 && v <= maxRecent {
				n = v
			}
		}
		return notifier.FormatRecent(s.Ledger.Bets(), n, s.Ledger.Settings().OddsFormat)
	case "/bankroll":
		st := s.Ledger.Settings()
		summary := stats.Compute(s.Ledger.Bets())
		reply := notifier.FormatBankroll(st, summary)
		if alert := notifier.FormatAlert(ledger.BankrollWarnings(0, st.Bankroll, summary.Profit)); alert != "" {
			reply += "\n" + alert
		}
		return reply
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.Log.Error("send notification", zap.Error(err))
	}
}

func since(bets []model.Bet, from time.Time) []model.Bet {
	var out []model.Bet
	for _, b := range bets {
		if !b.Date.Before(from) {
			out = append(out, b)
		}
	}
	return out
}
