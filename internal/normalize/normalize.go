// Package normalize converts adapter output into canonical draw records.
package normalize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"lottokit/internal/pkg/models"
)

// DateLayout is the canonical draw date format.
const DateLayout = "2006-01-02"

const centuryPrefix = "20"

// ParseError marks a record that failed the validation gate. Such records
// are dropped by the caller, never stored.
type ParseError struct {
	Issue  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("draw %s: %s", e.Issue, e.Reason)
}

// CanonicalIssue expands a short issue token to the 7-digit "YYYYNNN" form
// by prefixing the current century. Already-canonical issues pass through
// unchanged, so the function is idempotent.
func CanonicalIssue(issue string) string {
	issue = strings.TrimSpace(issue)
	if len(issue) >= 7 {
		return issue
	}
	need := 7 - len(issue)
	if need > len(centuryPrefix) {
		return issue
	}
	return centuryPrefix[:need] + issue
}

// IssueNumber returns the numeric value of an issue for ordering.
func IssueNumber(issue string) (int64, bool) {
	n, err := strconv.ParseInt(CanonicalIssue(issue), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextIssue predicts the issue following the given one by incrementing the
// 3-digit sequence suffix. The year prefix is left untouched: the last issue
// of a year predicts a nonexistent number until the upstream publishes the
// new year's first draw. Known simplification, kept on purpose.
func NextIssue(issue string) string {
	c := CanonicalIssue(issue)
	if len(c) < 7 {
		return c
	}
	n, err := strconv.Atoi(c[4:])
	if err != nil {
		return c
	}
	return fmt.Sprintf("%s%03d", c[:4], n+1)
}

// Record maps a raw adapter entry to a canonical DrawRecord, applying the
// validation gate for the given rule.
func Record(raw models.RawDraw, rule models.LotteryRule) (models.DrawRecord, error) {
	issue := CanonicalIssue(raw.Issue)
	if _, err := strconv.ParseInt(issue, 10, 64); err != nil {
		return models.DrawRecord{}, &ParseError{Issue: raw.Issue, Reason: "non-numeric issue"}
	}

	date, err := time.Parse(DateLayout, raw.Date)
	if err != nil {
		return models.DrawRecord{}, &ParseError{Issue: issue, Reason: "unparseable date " + strconv.Quote(raw.Date)}
	}

	week := raw.Week
	if week == "" {
		week = models.WeekLabels[int(date.Weekday())]
	}

	if len(raw.Red) != rule.RedCount {
		return models.DrawRecord{}, &ParseError{Issue: issue, Reason: fmt.Sprintf("red count %d, want %d", len(raw.Red), rule.RedCount)}
	}
	red := append([]int(nil), raw.Red...)
	sort.Ints(red)
	for i, n := range red {
		if n < 1 || n > rule.RedMax {
			return models.DrawRecord{}, &ParseError{Issue: issue, Reason: fmt.Sprintf("red ball %d out of range", n)}
		}
		if i > 0 && red[i-1] == n {
			return models.DrawRecord{}, &ParseError{Issue: issue, Reason: fmt.Sprintf("duplicate red ball %d", n)}
		}
	}

	if len(raw.Blue) != rule.BlueCount {
		return models.DrawRecord{}, &ParseError{Issue: issue, Reason: fmt.Sprintf("blue count %d, want %d", len(raw.Blue), rule.BlueCount)}
	}
	blue := append([]int(nil), raw.Blue...)
	for _, n := range blue {
		if n < 1 || n > rule.BlueMax {
			return models.DrawRecord{}, &ParseError{Issue: issue, Reason: fmt.Sprintf("blue ball %d out of range", n)}
		}
	}

	return models.DrawRecord{
		Issue: issue,
		Date:  raw.Date,
		Week:  week,
		Red:   red,
		Blue:  blue,
	}, nil
}
