package cwl

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"lottokit/internal/pkg/models"
)

type envelope struct {
	Result []resultItem `json:"result"`
}

type resultItem struct {
	Code string `json:"code"`
	Date string `json:"date"`
	Week string `json:"week"`
	Red  string `json:"red"`  // comma-joined, e.g. "01,05,12,18,22,29"
	Blue string `json:"blue"` // string-encoded integer
}

var datePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

func parseEnvelope(body []byte) ([]models.RawDraw, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if len(env.Result) == 0 {
		return nil, errors.New("empty result set")
	}

	out := make([]models.RawDraw, 0, len(env.Result))
	for _, item := range env.Result {
		red, err := splitRed(item.Red)
		if err != nil {
			continue
		}
		blue, err := strconv.Atoi(strings.TrimSpace(item.Blue))
		if err != nil {
			continue
		}
		out = append(out, models.RawDraw{
			Issue: item.Code,
			Date:  datePrefixRe.FindString(item.Date),
			Week:  item.Week,
			Red:   red,
			Blue:  []int{blue},
		})
	}
	return out, nil
}

func splitRed(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	red := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("non-numeric red ball %q", p)
		}
		red = append(red, n)
	}
	return red, nil
}
