package scoring

import "testing"

func TestCalculateScore(t *testing.T) {
	cases := []struct {
		name                          string
		optimal, actual, tol, maxPts  int
		want                          int
		wantErr                       bool
	}{
		{"within tolerance gets full points", 5, 5, 0, 100, 100, false},
		{"exactly optimal plus tolerance", 5, 7, 2, 100, 100, false},
		{"twice optimal halves the score", 5, 10, 0, 100, 50, false},
		{"scales down against smaller max", 5, 10, 0, 50, 25, false},
		{"scales down against larger max", 5, 10, 0, 200, 100, false},
		{"zero optimal is an overflow error", 0, 5, 0, 100, 0, true},
		{"zero actual is an overflow error", 5, 0, 0, 100, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := CalculateScore(c.optimal, c.actual, c.tol, c.maxPts)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error, got score %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Errorf("CalculateScore(%d,%d,%d,%d) = %d, want %d", c.optimal, c.actual, c.tol, c.maxPts, got, c.want)
			}
		})
	}
}

func TestCalculateScoreMonotonicity(t *testing.T) {
	// Scorer monotonicity law: for fixed optimal/tolerance/max, score(actual)
	// is non-increasing once actual > optimal+tolerance.
	optimal, tolerance, maxPts := 5, 0, 100
	prev, _ := CalculateScore(optimal, optimal+1, tolerance, maxPts)
	for actual := optimal + 2; actual <= optimal+20; actual++ {
		got, err := CalculateScore(optimal, actual, tolerance, maxPts)
		if err != nil {
			t.Fatalf("unexpected error at actual=%d: %v", actual, err)
		}
		if got > prev {
			t.Fatalf("score increased from %d to %d as actual grew to %d", prev, got, actual)
		}
		prev = got
	}
}

func TestApplyMultiplier(t *testing.T) {
	cases := []struct {
		name     string
		score    int
		m        float64
		want     int
		wantErr  bool
	}{
		{"typical down-scale", 100, 0.8, 80, false},
		{"zero multiplier floors to zero", 100, 0.0, 0, false},
		{"max multiplier doubles", 100, 2.0, 200, false},
		{"negative multiplier is invalid", 100, -0.5, 0, true},
		{"multiplier above range is invalid", 100, 3.0, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ApplyMultiplier(c.score, c.m)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Errorf("ApplyMultiplier(%d,%v) = %d, want %d", c.score, c.m, got, c.want)
			}
		})
	}
}

func TestGetRating(t *testing.T) {
	cases := []struct {
		score, max int
		want       Rating
	}{
		{100, 100, RatingPerfect},
		{95, 100, RatingExcellent},
		{90, 100, RatingExcellent},
		{80, 100, RatingGood},
		{75, 100, RatingGood},
		{60, 100, RatingFair},
		{50, 100, RatingFair},
		{10, 100, RatingPoor},
		{0, 0, RatingPoor},
	}
	for _, c := range cases {
		if got := GetRating(c.score, c.max); got != c.want {
			t.Errorf("GetRating(%d,%d) = %v, want %v", c.score, c.max, got, c.want)
		}
	}
}

func TestCalculateTotalAndAverageScore(t *testing.T) {
	total, err := CalculateTotalScore([]int{100, 100, 99})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 299 {
		t.Errorf("total = %d, want 299", total)
	}
	avg, err := CalculateAverageScore([]int{100, 100, 99})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 99 {
		t.Errorf("average = %d, want 99 (floor of 299/3)", avg)
	}
	if avg, err := CalculateAverageScore(nil); err != nil || avg != 0 {
		t.Errorf("average of empty set = (%d, %v), want (0, nil)", avg, err)
	}
}

func TestRatingDescriptionAndEmoji(t *testing.T) {
	for _, r := range []Rating{RatingPerfect, RatingExcellent, RatingGood, RatingFair, RatingPoor} {
		if r.Description() == "" {
			t.Errorf("rating %v has empty description", r)
		}
		if r.Emoji() == "" {
			t.Errorf("rating %v has empty emoji", r)
		}
	}
}
