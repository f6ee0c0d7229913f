package models

import (
	"time"
)

// Supported game IDs.
const (
	GameSSQ = "ssq" // 双色球: red 6 of 33, blue 1 of 16
	GameDLT = "dlt" // 大乐透: red 5 of 35, blue 2 of 12
)

// WeekLabels maps time.Weekday (0=Sunday..6=Saturday) to the labels the
// upstream sources and the canonical store use.
var WeekLabels = [7]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// LotteryRule describes one supported game. Immutable.
type LotteryRule struct {
	ID        string
	RedCount  int
	RedMax    int
	BlueCount int
	BlueMax   int
	DrawDays  []time.Weekday
}

// HasDrawDay reports whether the game holds a drawing on the given weekday.
func (r LotteryRule) HasDrawDay(d time.Weekday) bool {
	for _, day := range r.DrawDays {
		if day == d {
			return true
		}
	}
	return false
}

var rules = map[string]LotteryRule{
	GameSSQ: {
		ID:        GameSSQ,
		RedCount:  6,
		RedMax:    33,
		BlueCount: 1,
		BlueMax:   16,
		DrawDays:  []time.Weekday{time.Sunday, time.Tuesday, time.Thursday},
	},
	GameDLT: {
		ID:        GameDLT,
		RedCount:  5,
		RedMax:    35,
		BlueCount: 2,
		BlueMax:   12,
		DrawDays:  []time.Weekday{time.Monday, time.Wednesday, time.Saturday},
	},
}

// RuleByID returns the rule for a game ID.
func RuleByID(id string) (LotteryRule, bool) {
	r, ok := rules[id]
	return r, ok
}

// GameIDs returns the IDs of all supported games.
func GameIDs() []string {
	return []string{GameSSQ, GameDLT}
}
