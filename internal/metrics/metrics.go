package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"FightLedger/internal/model"
	"FightLedger/internal/stats"
)

const namespace = "fightledger"

// Metrics exposes the ledger summary as Prometheus gauges.
type Metrics struct {
	betsTotal prometheus.Gauge
	byOutcome *prometheus.GaugeVec
	wagered   prometheus.Gauge
	profit    prometheus.Gauge
	roi       prometheus.Gauge
	winRate   prometheus.Gauge
}

// New registers the ledger gauges on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		betsTotal: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bets_total",
			Help:      "Number of countable bets in the ledger.",
		}),
		byOutcome: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bets_by_outcome",
			Help:      "Countable bets grouped by outcome.",
		}, []string{"outcome"}),
		wagered: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wagered_total",
			Help:      "Sum of stakes over countable bets.",
		}),
		profit: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "profit",
			Help:      "Winnings minus total amount wagered.",
		}),
		roi: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "roi_percent",
			Help:      "Return on investment in percent.",
		}),
		winRate: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "win_rate_percent",
			Help:      "Share of countable bets won, in percent.",
		}),
	}
}

// Update sets every gauge from s.
func (m *Metrics) Update(s stats.Summary) {
	m.betsTotal.Set(float64(s.TotalBets))
	m.byOutcome.WithLabelValues(string(model.OutcomeWin)).Set(float64(s.Wins))
	m.byOutcome.WithLabelValues(string(model.OutcomeLoss)).Set(float64(s.Losses))
	m.byOutcome.WithLabelValues(string(model.OutcomeDraw)).Set(float64(s.Draws))
	m.wagered.Set(s.TotalAmount)
	m.profit.Set(s.Profit)
	m.roi.Set(s.ROI)
	m.winRate.Set(s.WinRate)
}
