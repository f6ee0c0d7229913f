package w500

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"lottokit/internal/pkg/config"
	"lottokit/internal/pkg/models"
)

const samplePage = `<html><body>
<table class="kj_tablelist">
<tr><th>期号</th><th>开奖日期</th><th>号码</th></tr>
<tr>
  <td>24005</td>
  <td><em class="rr">05</em><em class="rr">08</em><em class="rr">12</em><em class="rr">18</em><em class="rr">22</em><em class="rr">29</em><em class="bb">07</em></td>
  <td>2024-01-09</td>
</tr>
<tr>
  <td>24004</td>
  <td><em class="rr">02</em><em class="rr">08</em><em class="rr">14</em><em class="bb">11</em></td>
  <td>2024-01-07</td>
</tr>
</table>
</body></html>`

func ssqRule(t *testing.T) models.LotteryRule {
	t.Helper()
	rule, ok := models.RuleByID(models.GameSSQ)
	if !ok {
		t.Fatal("ssq rule missing")
	}
	return rule
}

func TestParseTable(t *testing.T) {
	draws, err := parseTable(strings.NewReader(samplePage), ssqRule(t))
	if err != nil {
		t.Fatalf("parseTable error: %v", err)
	}
	// Header row skipped, short row with wrong ball counts dropped.
	if len(draws) != 1 {
		t.Fatalf("got %d draws, want 1", len(draws))
	}

	draw := draws[0]
	if draw.Issue != "2024005" {
		t.Errorf("issue = %q, want 2024005 (short form expanded)", draw.Issue)
	}
	if draw.Date != "2024-01-09" {
		t.Errorf("date = %q", draw.Date)
	}
	if want := []int{5, 8, 12, 18, 22, 29}; !reflect.DeepEqual(draw.Red, want) {
		t.Errorf("red = %v, want %v", draw.Red, want)
	}
	if want := []int{7}; !reflect.DeepEqual(draw.Blue, want) {
		t.Errorf("blue = %v, want %v", draw.Blue, want)
	}
}

func TestParseTableNoRows(t *testing.T) {
	if _, err := parseTable(strings.NewReader("<html><body>maintenance</body></html>"), ssqRule(t)); err == nil {
		t.Error("page without the result table should be an error")
	}
}

func TestFetchSinceDecodesGBK(t *testing.T) {
	encoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewEncoder(), []byte(samplePage))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/ssq.shtml") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write(encoded)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Sources.W500.BaseURL = srv.URL
	cfg.Updater.Timeout = time.Second

	src := New(cfg)
	draws := src.FetchSince(context.Background(), models.GameSSQ, "2024001")
	if len(draws) != 1 {
		t.Fatalf("got %d draws, want 1", len(draws))
	}
	if draws[0].Issue != "2024005" {
		t.Errorf("issue = %q, want 2024005", draws[0].Issue)
	}
}

func TestFetchSinceFailureYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Sources.W500.BaseURL = srv.URL
	cfg.Updater.Timeout = time.Second

	src := New(cfg)
	if draws := src.FetchSince(context.Background(), models.GameSSQ, "2024001"); len(draws) != 0 {
		t.Errorf("non-2xx should yield empty, got %v", draws)
	}
	if draws := src.FetchSince(context.Background(), "unknown-game", "2024001"); draws != nil {
		t.Errorf("unsupported game should yield nil, got %v", draws)
	}
}
