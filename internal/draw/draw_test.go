package draw

import (
	"testing"

	"lottokit/internal/pkg/models"
)

func TestNumbersProperties(t *testing.T) {
	for _, game := range models.GameIDs() {
		rule, _ := models.RuleByID(game)
		t.Run(game, func(t *testing.T) {
			for i := 0; i < 200; i++ {
				pick, err := Numbers(rule)
				if err != nil {
					t.Fatalf("Numbers error: %v", err)
				}
				checkGroup(t, pick.Red, rule.RedCount, rule.RedMax)
				checkGroup(t, pick.Blue, rule.BlueCount, rule.BlueMax)
			}
		})
	}
}

func checkGroup(t *testing.T, balls []int, count, max int) {
	t.Helper()
	if len(balls) != count {
		t.Fatalf("got %d balls, want %d", len(balls), count)
	}
	for i, n := range balls {
		if n < 1 || n > max {
			t.Fatalf("ball %d out of [1, %d]", n, max)
		}
		if i > 0 {
			if balls[i-1] == n {
				t.Fatalf("duplicate ball %d in %v", n, balls)
			}
			if balls[i-1] > n {
				t.Fatalf("balls not ascending: %v", balls)
			}
		}
	}
}

func TestDistinctRejectsImpossible(t *testing.T) {
	if _, err := distinct(10, 5); err == nil {
		t.Error("distinct(10, 5) should fail")
	}
	if _, err := distinct(0, 5); err == nil {
		t.Error("distinct(0, 5) should fail")
	}
}
