// Package schedule derives the next drawable issue and its sale cutoff from
// the latest known issue and the wall clock. No upstream call involved.
package schedule

import (
	"time"

	"lottokit/internal/normalize"
	"lottokit/internal/pkg/models"
)

// CutoffHour is the local hour at which betting closes on a draw day.
const CutoffHour = 20

// Next computes the schedule for the issue following latestIssue.
func Next(latestIssue string, now time.Time, rule models.LotteryRule) models.ScheduleInfo {
	day := deadlineWeekday(now, rule)
	return models.ScheduleInfo{
		NextIssue: normalize.NextIssue(latestIssue),
		Deadline: models.Deadline{
			Weekday:    models.WeekLabels[int(day)],
			CutoffHour: CutoffHour,
		},
	}
}

// deadlineWeekday picks today if it is a draw day and the cutoff has not
// passed, otherwise the first draw day after today. Terminates within 7
// iterations because DrawDays is non-empty.
func deadlineWeekday(now time.Time, rule models.LotteryRule) time.Weekday {
	if rule.HasDrawDay(now.Weekday()) && now.Hour() < CutoffHour {
		return now.Weekday()
	}
	for i := 1; i <= 7; i++ {
		d := time.Weekday((int(now.Weekday()) + i) % 7)
		if rule.HasDrawDay(d) {
			return d
		}
	}
	return now.Weekday()
}
