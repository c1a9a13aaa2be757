package stats

import (
	"time"

	"FightLedger/internal/model"
)

// DateLabelLayout is how chart points label their date.
const DateLabelLayout = "2006-01-02"

// Point is one step of the cumulative profit curve.
type Point struct {
	Date       time.Time `json:"date"`
	Label      string    `json:"label"`
	BetID      string    `json:"betId"`
	Net        float64   `json:"net"`
	Cumulative float64   `json:"cumulative"`
}

// CumulativeProfit returns one point per countable bet in date order, each
// carrying the running total of NetResult from zero.
func CumulativeProfit(bets []model.Bet) []Point {
	sorted := byDate(Countable(bets))
	points := make([]Point, 0, len(sorted))
	running := 0.0
	for _, b := range sorted {
		net := NetResult(b)
		running += net
		points = append(points, Point{
			Date:       b.Date,
			Label:      b.Date.Format(DateLabelLayout),
			BetID:      b.ID,
			Net:        net,
			Cumulative: running,
		})
	}
	return points
}
