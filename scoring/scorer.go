// Package scoring implements the pure scoring functions described in §4.6:
// a points calculator, a bounded multiplier, rating bands, and aggregate
// helpers, ported from original_source/src/game/scorer.rs.
package scoring

import (
	"errors"
	"math"
)

// ErrScoreOverflow is returned for invalid inputs or arithmetic overflow, per
// the ScoreOverflow error kind in §7.
var ErrScoreOverflow = errors.New("score overflow")

// Rating buckets a percentage score into one of five descriptive bands.
type Rating int

const (
	RatingPoor Rating = iota
	RatingFair
	RatingGood
	RatingExcellent
	RatingPerfect
)

// String names the rating, consumed by the results view.
func (r Rating) String() string {
	switch r {
	case RatingPerfect:
		return "Perfect"
	case RatingExcellent:
		return "Excellent"
	case RatingGood:
		return "Good"
	case RatingFair:
		return "Fair"
	default:
		return "Poor"
	}
}

// Description gives a longer human-readable label for the rating, carried
// over from the reference trainer's PerformanceRating::description() (a
// supplemented feature, see SPEC_FULL.md §10).
func (r Rating) Description() string {
	switch r {
	case RatingPerfect:
		return "Flawless execution"
	case RatingExcellent:
		return "Excellent work"
	case RatingGood:
		return "Good effort"
	case RatingFair:
		return "Room for improvement"
	default:
		return "Keep practicing"
	}
}

// Emoji mirrors the reference trainer's PerformanceRating::emoji().
func (r Rating) Emoji() string {
	switch r {
	case RatingPerfect:
		return "🏆"
	case RatingExcellent:
		return "⭐"
	case RatingGood:
		return "👍"
	case RatingFair:
		return "🙂"
	default:
		return "💪"
	}
}

// saturatingAdd adds b to a, clamping at the max int32 value instead of
// overflowing — mirrors the reference scorer's use of Rust's
// saturating_add for the tolerance check in CalculateScore.
func saturatingAdd(a, b int) int {
	const maxInt32 = int(^uint32(0) >> 1)
	if a > maxInt32-b {
		return maxInt32
	}
	return a + b
}

// CalculateScore implements §4.6 rules 1-3.
func CalculateScore(optimal, actual, tolerance, maxPoints int) (int, error) {
	if optimal == 0 || actual == 0 {
		return 0, ErrScoreOverflow
	}
	if actual <= saturatingAdd(optimal, tolerance) {
		return maxPoints, nil
	}
	mp, opt := int64(maxPoints), int64(optimal)
	if opt != 0 && mp > math.MaxInt64/opt {
		return 0, ErrScoreOverflow
	}
	numerator := mp * opt
	score := numerator / int64(actual)
	if score > int64(maxPoints) {
		score = int64(maxPoints)
	}
	if score > math.MaxInt32 {
		return 0, ErrScoreOverflow
	}
	return int(score), nil
}

// ApplyMultiplier scales score by m, m in [0.0, 2.0].
func ApplyMultiplier(score int, m float64) (int, error) {
	if m < 0.0 || m > 2.0 {
		return 0, ErrScoreOverflow
	}
	result := float64(score) * m
	if result > math.MaxInt32 || result < math.MinInt32 {
		return 0, ErrScoreOverflow
	}
	return int(result), nil
}

// GetRating buckets percent = floor(100*score/max) into a Rating; max == 0
// is always Poor.
func GetRating(score, maxPoints int) Rating {
	if maxPoints == 0 {
		return RatingPoor
	}
	percent := (100 * score) / maxPoints
	switch {
	case percent >= 100:
		return RatingPerfect
	case percent >= 90:
		return RatingExcellent
	case percent >= 75:
		return RatingGood
	case percent >= 50:
		return RatingFair
	default:
		return RatingPoor
	}
}

// CalculateTotalScore sums scores with overflow detection.
func CalculateTotalScore(scores []int) (int, error) {
	total := 0
	for _, s := range scores {
		next := total + s
		if next < total {
			return 0, ErrScoreOverflow
		}
		total = next
	}
	return total, nil
}

// CalculateAverageScore is floor(total/n); empty input is 0.
func CalculateAverageScore(scores []int) (int, error) {
	if len(scores) == 0 {
		return 0, nil
	}
	total, err := CalculateTotalScore(scores)
	if err != nil {
		return 0, err
	}
	return total / len(scores), nil
}
