package x500

import (
	"regexp"
	"strconv"
	"strings"

	"lottokit/internal/pkg/models"
)

// The payload is a flat stream of self-closing <row .../> tags. A full XML
// parse buys nothing here; the rows are matched directly on the raw text.
// The red and blue groups inside opencode are separated by '+' or '|'
// depending on the game.
var rowRe = regexp.MustCompile(`<row expect="(\d+)" opencode="([\d,]+)[+|]([\d,]+)" opentime="([^"]+)"`)

func extractRows(payload string) []models.RawDraw {
	var out []models.RawDraw
	for _, m := range rowRe.FindAllStringSubmatch(payload, -1) {
		issue := m[1]
		// Short 5-digit issues get the current century prefixed.
		if len(issue) == 5 {
			issue = "20" + issue
		}

		red, ok := splitGroup(m[2])
		if !ok {
			continue
		}
		blue, ok := splitGroup(m[3])
		if !ok {
			continue
		}

		// opentime is "YYYY-MM-DD HH:MM:SS"; only the date matters.
		date := strings.Fields(m[4])
		if len(date) == 0 {
			continue
		}

		out = append(out, models.RawDraw{
			Issue: issue,
			Date:  date[0],
			Red:   red,
			Blue:  blue,
		})
	}
	return out
}

func splitGroup(s string) ([]int, bool) {
	parts := strings.Split(s, ",")
	balls := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		balls = append(balls, n)
	}
	return balls, true
}
