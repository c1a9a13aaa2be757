package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"FightLedger/internal/model"
)

var (
	// ErrUnknownFormat is returned for an odds format name that is not supported.
	ErrUnknownFormat = errors.New("unknown odds format")
	// ErrInvalidOdds is returned for odds outside the range a format can express.
	ErrInvalidOdds = errors.New("invalid odds")
)

// AmericanToDecimal converts American odds to decimal odds.
// +150 -> 2.50, -150 -> 1.667
func AmericanToDecimal(american float64) (float64, error) {
	if american == 0 || math.IsNaN(american) {
		return 0, fmt.Errorf("%w: american odds cannot be %v", ErrInvalidOdds, american)
	}
	if american > 0 {
		return american/100 + 1, nil
	}
	return 100/math.Abs(american) + 1, nil
}

// DecimalToAmerican converts decimal odds to American odds rounded to whole points.
// 2.50 -> +150, 1.667 -> -150
func DecimalToAmerican(decimal float64) (int, error) {
	if !(decimal > 1) || math.IsInf(decimal, 0) {
		return 0, fmt.Errorf("%w: decimal odds must be > 1, got %v", ErrInvalidOdds, decimal)
	}
	var american float64
	if decimal >= 2 {
		american = math.Round((decimal - 1) * 100)
	} else {
		american = math.Round(-100 / (decimal - 1))
	}
	if math.Abs(american) >= math.MaxInt {
		return 0, fmt.Errorf("%w: decimal odds %v out of American range", ErrInvalidOdds, decimal)
	}
	return int(american), nil
}

// ParseOdds reads odds text in the given format and returns decimal odds.
func ParseOdds(text string, format model.OddsFormat) (float64, error) {
	text = strings.TrimSpace(text)
	switch format {
	case model.OddsDecimal:
		d, err := strconv.ParseFloat(text, 64)
		if err != nil || !(d > 0) || math.IsInf(d, 0) {
			return 0, fmt.Errorf("%w: decimal odds %q", ErrInvalidOdds, text)
		}
		return d, nil
	case model.OddsAmerican:
		a, err := strconv.ParseFloat(strings.TrimPrefix(text, "+"), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: american odds %q", ErrInvalidOdds, text)
		}
		return AmericanToDecimal(a)
	case model.OddsFractional:
		f, err := ParseFraction(text)
		if err != nil {
			return 0, err
		}
		return f.Decimal(), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FormatOdds renders decimal odds in the given format: "1.91", "+150", "5/2".
func FormatOdds(decimal float64, format model.OddsFormat) (string, error) {
	switch format {
	case model.OddsDecimal:
		return strconv.FormatFloat(decimal, 'f', 2, 64), nil
	case model.OddsAmerican:
		a, err := DecimalToAmerican(decimal)
		if err != nil {
			return "", err
		}
		if a > 0 {
			return fmt.Sprintf("+%d", a), nil
		}
		return strconv.Itoa(a), nil
	case model.OddsFractional:
		f, err := DecimalToFractional(decimal)
		if err != nil {
			return "", err
		}
		return f.String(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ConvertOdds converts odds text between formats, going through decimal odds.
func ConvertOdds(text string, from, to model.OddsFormat) (string, error) {
	d, err := ParseOdds(text, from)
	if err != nil {
		return "", err
	}
	return FormatOdds(d, to)
}

// ParlayOdds compounds leg odds into the parlay's decimal odds. No legs yields 1.
func ParlayOdds(legs []float64) float64 {
	total := 1.0
	for _, o := range legs {
		total *= o
	}
	return total
}

// PotentialWinnings returns the gross return (stake included) of a winning bet.
func PotentialWinnings(stake, decimalOdds float64) float64 {
	return stake * decimalOdds
}

// ROI returns the return on investment as a percentage. Zero stake yields 0.
func ROI(totalWinnings, totalStake float64) float64 {
	if totalStake == 0 {
		return 0
	}
	return (totalWinnings - totalStake) / totalStake * 100
}

// ImpliedProbability converts decimal odds to the implied win probability.
func ImpliedProbability(decimalOdds float64) float64 {
	if decimalOdds <= 0 {
		return 0
	}
	return 1 / decimalOdds
}

// WinProbability returns the implied probability of odds given in any format.
func WinProbability(odds string, format model.OddsFormat) (float64, error) {
	d, err := ParseOdds(odds, format)
	if err != nil {
		return 0, err
	}
	return ImpliedProbability(d), nil
}
