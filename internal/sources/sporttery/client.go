package sporttery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"lottokit/internal/sources"
)

const (
	defaultBaseURL = "https://webapi.sporttery.cn"
	referer        = "https://static.sporttery.cn/"
)

type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: sources.NewHTTPClient(timeout),
	}
}

// GetDraw queries the vendor for one explicit issue (vendor short form).
// gameCode selects the target game on the vendor side.
func (c *Client) GetDraw(ctx context.Context, gameCode, shortIssue string) ([]byte, error) {
	params := url.Values{
		"gameNo":         {gameCode},
		"provinceId":     {"0"},
		"pageSize":       {"1"},
		"isVerify":       {"1"},
		"pageNo":         {"1"},
		"lotteryDrawNum": {shortIssue},
	}
	rawURL := c.baseURL + "/gateway/lottery/getHistoryPageListV1.qry?" + params.Encode()
	return c.doRequest(ctx, rawURL)
}

// The vendor rejects requests that do not look like its own web frontend,
// so Referer and Origin are mandatory.
func (c *Client) doRequest(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Referer", referer)
	req.Header.Set("Origin", "https://static.sporttery.cn")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
