// Package domain converts raw exercise results into half-point band scores.
package domain

import (
	"fmt"
	"math"
)

const (
	MaxBand = 9.0
	// DefaultMaxCorrect is the question count of a full reading or listening paper.
	DefaultMaxCorrect = 40
)

// RoundBand snaps v to a half band: fractions below .25 round down, below .75
// round to .5 and anything above rounds up.
func RoundBand(v float64) float64 {
	floor := math.Floor(v)
	frac := v - floor
	switch {
	case frac < 0.25:
		return floor
	case frac < 0.75:
		return floor + 0.5
	default:
		return floor + 1
	}
}

// BandFromCorrect maps correct answers linearly onto 0..9 in half steps.
// correct is clamped into [0, maxCorrect]; a non-positive maxCorrect uses
// DefaultMaxCorrect.
func BandFromCorrect(correct, maxCorrect int) float64 {
	if maxCorrect <= 0 {
		maxCorrect = DefaultMaxCorrect
	}
	if correct < 0 {
		correct = 0
	}
	if correct > maxCorrect {
		correct = maxCorrect
	}
	scaled := float64(correct) / float64(maxCorrect) * MaxBand
	return math.Floor(scaled*2+0.5) / 2
}

// OverallBand averages the four skill bands and rounds the mean.
func OverallBand(listening, reading, writing, speaking float64) (float64, error) {
	for _, b := range []float64{listening, reading, writing, speaking} {
		if err := validateBand(b); err != nil {
			return 0, err
		}
	}
	return RoundBand((listening + reading + writing + speaking) / 4), nil
}

func validateBand(b float64) error {
	if b < 0 || b > MaxBand || math.IsNaN(b) {
		return fmt.Errorf("band %.2f is outside 0..9", b)
	}
	if b*2 != math.Trunc(b*2) {
		return fmt.Errorf("band %.2f is not a half-point value", b)
	}
	return nil
}
