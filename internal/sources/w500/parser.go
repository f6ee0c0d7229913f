package w500

import (
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lottokit/internal/pkg/models"
)

// Result table and ball marker selectors. The table layout has been stable
// for years; ball cells carry a class so column order does not matter.
const (
	rowSelector  = "table.kj_tablelist tr"
	redSelector  = "em.rr"
	blueSelector = "em.bb"
)

var dateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// parseTable extracts draw rows from the decoded page. Header rows and rows
// missing the full column set or the expected ball counts are skipped
// silently.
func parseTable(r io.Reader, rule models.LotteryRule) ([]models.RawDraw, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var out []models.RawDraw
	doc.Find(rowSelector).Each(func(_ int, row *goquery.Selection) {
		if row.Find("th").Length() > 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		issue := strings.TrimSpace(cells.Eq(0).Text())
		if issue == "" {
			return
		}
		// Short 5-digit issues get the current century prefixed.
		if len(issue) == 5 {
			issue = "20" + issue
		}

		date := dateRe.FindString(row.Text())
		if date == "" {
			return
		}

		red := ballValues(row, redSelector)
		blue := ballValues(row, blueSelector)
		if len(red) != rule.RedCount || len(blue) != rule.BlueCount {
			return
		}

		out = append(out, models.RawDraw{
			Issue: issue,
			Date:  date,
			Red:   red,
			Blue:  blue,
		})
	})

	if len(out) == 0 {
		return nil, errors.New("no draw rows extracted, table layout changed?")
	}
	return out, nil
}

func ballValues(row *goquery.Selection, selector string) []int {
	var balls []int
	bad := false
	row.Find(selector).Each(func(_ int, em *goquery.Selection) {
		n, err := strconv.Atoi(strings.TrimSpace(em.Text()))
		if err != nil {
			bad = true
			return
		}
		balls = append(balls, n)
	})
	if bad {
		return nil
	}
	return balls
}
