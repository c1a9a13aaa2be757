package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// fractionTolerance is the largest accepted gap between the fraction and the
	// value it approximates.
	fractionTolerance = 0.0001
	// maxFractionSteps bounds the approximation walk. At fractionTolerance the
	// walk settles well before a denominator of 10000.
	maxFractionSteps = 200000
)

var (
	// ErrInvalidOddsFormat is returned for fractional odds not written as "n/d".
	ErrInvalidOddsFormat = errors.New("invalid fractional odds format")
	// ErrToleranceUnreached is returned when no fraction within tolerance was
	// found within maxFractionSteps.
	ErrToleranceUnreached = errors.New("fraction approximation did not converge")
)

// Fraction is fractional odds: profit Num for a stake of Den.
type Fraction struct {
	Num int
	Den int
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// Decimal returns the equivalent decimal odds.
func (f Fraction) Decimal() float64 {
	return float64(f.Num)/float64(f.Den) + 1
}

// ParseFraction parses "n/d" with positive integer parts.
func ParseFraction(text string) (Fraction, error) {
	parts := strings.Split(strings.TrimSpace(text), "/")
	if len(parts) != 2 {
		return Fraction{}, fmt.Errorf("%w: %q", ErrInvalidOddsFormat, text)
	}
	num, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Fraction{}, fmt.Errorf("%w: numerator %q", ErrInvalidOddsFormat, parts[0])
	}
	den, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Fraction{}, fmt.Errorf("%w: denominator %q", ErrInvalidOddsFormat, parts[1])
	}
	if num <= 0 || den <= 0 {
		return Fraction{}, fmt.Errorf("%w: parts must be positive in %q", ErrInvalidOddsFormat, text)
	}
	return Fraction{Num: num, Den: den}, nil
}

// DecimalToFractional approximates decimal-1 with the first fraction found
// within tolerance. The whole part is taken off first and the remainder is
// walked from 0/1 (1/1 when there is no whole part): the numerator grows while
// the fraction is too small, the denominator while it is too large. The
// result is not necessarily reduced and is imprecise for values that have no
// short fraction.
func DecimalToFractional(decimal float64) (Fraction, error) {
	if !(decimal > 1) || math.IsInf(decimal, 0) {
		return Fraction{}, fmt.Errorf("%w: decimal odds must be > 1, got %v", ErrInvalidOdds, decimal)
	}
	return approximateFraction(decimal-1, fractionTolerance, maxFractionSteps)
}

func approximateFraction(target, tolerance float64, maxSteps int) (Fraction, error) {
	whole := math.Floor(target)
	rest := target - whole

	num, den := 0, 1
	if whole == 0 {
		num = 1
	}
	diff := rest - float64(num)/float64(den)
	for steps := 0; math.Abs(diff) > tolerance; steps++ {
		if steps >= maxSteps {
			return Fraction{}, fmt.Errorf("%w: %v after %d steps", ErrToleranceUnreached, target+1, maxSteps)
		}
		if diff > 0 {
			num++
		} else {
			den++
		}
		diff = rest - float64(num)/float64(den)
	}

	if whole >= float64((math.MaxInt-num)/den) {
		return Fraction{}, fmt.Errorf("%w: %v is too large for fractional odds", ErrInvalidOdds, target+1)
	}
	return Fraction{Num: num + int(whole)*den, Den: den}, nil
}
