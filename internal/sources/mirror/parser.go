package mirror

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"lottokit/internal/pkg/models"
)

// flexString decodes a JSON string or number into its string form; the
// mirror is not consistent about which one it emits.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type mirrorRecord struct {
	Issue flexString     `json:"期号"`
	Date  string         `json:"开奖日期"`
	Nums  *mirrorNumbers `json:"开奖号码"`
}

type mirrorNumbers struct {
	Red  []flexString `json:"红球"`
	Blue flexString   `json:"蓝球"`
}

// The date embeds a parenthesized weekday suffix, e.g. "2026-01-06(二)".
var mirrorDateRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)

// parseMirror converts the mirror array, dropping records that miss any
// required field instead of failing the whole batch.
func parseMirror(body []byte) ([]models.RawDraw, int, error) {
	var records []mirrorRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, 0, fmt.Errorf("decode mirror array: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, fmt.Errorf("mirror array is empty")
	}

	var out []models.RawDraw
	dropped := 0
	for _, rec := range records {
		raw, ok := cleanRecord(rec)
		if !ok {
			dropped++
			continue
		}
		out = append(out, raw)
	}
	return out, dropped, nil
}

func cleanRecord(rec mirrorRecord) (models.RawDraw, bool) {
	if rec.Issue == "" || rec.Date == "" || rec.Nums == nil {
		return models.RawDraw{}, false
	}

	date := mirrorDateRe.FindString(rec.Date)
	if date == "" {
		return models.RawDraw{}, false
	}

	if len(rec.Nums.Red) == 0 {
		return models.RawDraw{}, false
	}
	red := make([]int, 0, len(rec.Nums.Red))
	for _, r := range rec.Nums.Red {
		n, err := strconv.Atoi(strings.TrimSpace(string(r)))
		if err != nil {
			return models.RawDraw{}, false
		}
		red = append(red, n)
	}

	blue, err := strconv.Atoi(strings.TrimSpace(string(rec.Nums.Blue)))
	if err != nil {
		return models.RawDraw{}, false
	}

	return models.RawDraw{
		Issue: string(rec.Issue),
		Date:  date,
		Red:   red,
		Blue:  []int{blue},
	}, true
}
