package model

// OddsFormat is the display format odds are entered and shown in.
type OddsFormat string

const (
	OddsDecimal    OddsFormat = "decimal"
	OddsAmerican   OddsFormat = "american"
	OddsFractional OddsFormat = "fractional"
)

// Valid reports whether f is one of the known formats.
func (f OddsFormat) Valid() bool {
	switch f {
	case OddsDecimal, OddsAmerican, OddsFractional:
		return true
	}
	return false
}

// Bankroll holds the bankroll management parameters.
type Bankroll struct {
	TotalBankroll float64 `json:"totalBankroll"`
	UnitSize      float64 `json:"unitSize"`
	MaxBetSize    float64 `json:"maxBetSize"`
	StopLoss      float64 `json:"stopLoss"`
	StopWin       float64 `json:"stopWin"`
}

// Settings is the record persisted under the "settings" key.
type Settings struct {
	OddsFormat OddsFormat `json:"oddsFormat"`
	Bankroll   Bankroll   `json:"bankroll"`
}

// DefaultSettings returns the settings used when nothing has been saved yet.
func DefaultSettings() Settings {
	return Settings{
		OddsFormat: OddsDecimal,
		Bankroll: Bankroll{
			TotalBankroll: 1000,
			UnitSize:      10,
			MaxBetSize:    100,
			StopLoss:      -200,
			StopWin:       500,
		},
	}
}
