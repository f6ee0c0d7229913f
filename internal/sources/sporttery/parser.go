package sporttery

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"lottokit/internal/pkg/models"
)

type response struct {
	Value *struct {
		List []drawItem `json:"list"`
	} `json:"value"`
}

type drawItem struct {
	LotteryDrawNum    string `json:"lotteryDrawNum"`
	LotteryDrawTime   string `json:"lotteryDrawTime"`
	LotteryDrawResult string `json:"lotteryDrawResult"`
}

var drawDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// parseDraw extracts the draw for the requested vendor issue. found is
// false when the vendor has no data for it yet.
func parseDraw(body []byte, wantIssue string, mainCount int) (models.RawDraw, bool, error) {
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.RawDraw{}, false, fmt.Errorf("decode response: %w", err)
	}
	if resp.Value == nil || len(resp.Value.List) == 0 {
		return models.RawDraw{}, false, nil
	}

	item := resp.Value.List[0]
	if item.LotteryDrawNum != wantIssue {
		// The vendor falls back to its newest draw for unknown issues.
		return models.RawDraw{}, false, nil
	}

	date := drawDateRe.FindString(item.LotteryDrawTime)
	if date == "" {
		return models.RawDraw{}, false, fmt.Errorf("unparseable draw time %q", item.LotteryDrawTime)
	}

	main, supp, err := splitResult(item.LotteryDrawResult, mainCount)
	if err != nil {
		return models.RawDraw{}, false, err
	}

	return models.RawDraw{
		Issue: item.LotteryDrawNum,
		Date:  date,
		Red:   main,
		Blue:  supp,
	}, true, nil
}

// splitResult tokenizes the combined ball string. The delimiter varies:
// '+' primary, '|' fallback, otherwise whitespace. The first mainCount
// tokens are main balls, the remainder supplementary.
func splitResult(s string, mainCount int) (main, supp []int, err error) {
	tokens := splitTokens(s)
	if len(tokens) <= mainCount {
		return nil, nil, fmt.Errorf("result %q has %d tokens, want more than %d", s, len(tokens), mainCount)
	}

	balls := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return nil, nil, fmt.Errorf("non-numeric ball token %q", tok)
		}
		balls = append(balls, n)
	}
	return balls[:mainCount], balls[mainCount:], nil
}

func splitTokens(s string) []string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "+") {
		return strings.Split(s, "+")
	}
	if strings.Contains(s, "|") {
		return strings.Split(s, "|")
	}
	return strings.Fields(s)
}
