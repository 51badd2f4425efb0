package mlbstats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/winprob-viewer/internal/domain/games"
	"github.com/preston-bernstein/winprob-viewer/internal/domain/plays"
	"github.com/preston-bernstein/winprob-viewer/internal/providers"
	"github.com/preston-bernstein/winprob-viewer/internal/timeutil"
)

// maxBodyBytes caps how much of an upstream response is read.
var maxBodyBytes int64 = 8 << 20

// ErrResponseTooLarge reports an upstream body over maxBodyBytes.
var ErrResponseTooLarge = errors.New("response too large")

// Config controls how the client reaches the MLB Stats API.
type Config struct {
	BaseURL    string
	SportID    int
	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
}

// Client fetches schedules and win-probability logs from the MLB Stats API.
// Each call issues exactly one request; there are no retries.
type Client struct {
	baseURL    string
	sportID    int
	userAgent  string
	httpClient httpDoer
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		sportID:    resolveSportID(cfg.SportID),
		userAgent:  resolveUserAgent(cfg.UserAgent),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string {
	return providerName
}

// FetchSchedule retrieves the schedule for a single YYYY-MM-DD date.
func (c *Client) FetchSchedule(ctx context.Context, date string) (games.Schedule, error) {
	if _, err := timeutil.ParseDate(date); err != nil {
		return games.Schedule{}, &providers.FetchError{
			Op:   providers.OpSchedule,
			Kind: providers.KindRequest,
			Err:  fmt.Errorf("invalid date %q: %w", date, err),
		}
	}

	q := url.Values{}
	q.Set("sportId", strconv.Itoa(c.sportID))
	q.Set("startDate", date)
	q.Set("endDate", date)

	body, err := c.get(ctx, providers.OpSchedule, "/schedule/games/", q)
	if err != nil {
		return games.Schedule{}, err
	}
	schedule, err := DecodeSchedule(body)
	if err != nil {
		return games.Schedule{}, &providers.FetchError{Op: providers.OpSchedule, Kind: providers.KindDecode, Err: err}
	}
	return schedule, nil
}

// FetchGameInfo retrieves the play-by-play win-probability log for a game.
func (c *Client) FetchGameInfo(ctx context.Context, gamePk int) (plays.GameInfo, error) {
	if gamePk <= 0 {
		return nil, &providers.FetchError{
			Op:   providers.OpGameInfo,
			Kind: providers.KindRequest,
			Err:  fmt.Errorf("invalid game pk %d", gamePk),
		}
	}

	body, err := c.get(ctx, providers.OpGameInfo, "/game/"+strconv.Itoa(gamePk)+"/winProbability", nil)
	if err != nil {
		return nil, err
	}
	info, err := DecodeGameInfo(body)
	if err != nil {
		return nil, &providers.FetchError{Op: providers.OpGameInfo, Kind: providers.KindDecode, Err: err}
	}
	return info, nil
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &providers.FetchError{Op: op, Kind: providers.KindRequest, Err: err}
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &providers.FetchError{Op: op, Kind: providers.KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &providers.FetchError{
			Op:         op,
			Kind:       providers.KindStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(snippet))),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &providers.FetchError{Op: op, Kind: providers.KindNetwork, Err: err}
	}
	if int64(len(body)) > maxBodyBytes {
		return nil, &providers.FetchError{
			Op:   op,
			Kind: providers.KindNetwork,
			Err:  fmt.Errorf("%w: over %d bytes", ErrResponseTooLarge, maxBodyBytes),
		}
	}
	return body, nil
}
