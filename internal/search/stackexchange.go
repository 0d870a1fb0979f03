// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pdiddy/stackfind/internal/httputil"
	"github.com/pdiddy/stackfind/pkg/types"
)

// stackExchangeAPIBase is the Stack Exchange API root. Declared as a var so
// tests can substitute an httptest server.
var stackExchangeAPIBase = "https://api.stackexchange.com/2.3"

const (
	searchPath = "/search/advanced"

	// Site is the Stack Exchange site every lookup targets.
	Site = "stackoverflow"

	// PageSize is the number of questions requested per lookup.
	PageSize = 10

	// maxBodyBytes bounds how much of a response body is decoded.
	maxBodyBytes = 4 << 20
)

// StackExchange queries the Stack Exchange advanced search endpoint.
type StackExchange struct {
	Client    *http.Client
	Throttle  *httputil.Throttle
	BaseURL   string
	UserAgent string
}

// NewStackExchange builds a client from cfg. Zero values fall back to the
// public endpoint, a 30 s timeout and 25 requests per second.
func NewStackExchange(cfg types.StackExchangeConfig) *StackExchange {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 25
	}
	return &StackExchange{
		Client:    &http.Client{Timeout: timeout},
		Throttle:  httputil.NewThrottle(rps, int(rps)),
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
	}
}

// BuildURL returns the request URL for query and key.
func (s *StackExchange) BuildURL(query, key string) string {
	base := s.BaseURL
	if base == "" {
		base = stackExchangeAPIBase
	}
	params := url.Values{
		"q":        {query},
		"site":     {Site},
		"key":      {key},
		"pagesize": {strconv.Itoa(PageSize)},
		"order":    {"desc"},
		"sort":     {"relevance"},
	}
	return base + searchPath + "?" + params.Encode()
}

// Search issues exactly one request and classifies the outcome. Failures are
// returned as *Error with KindTransport, KindAPIRejected, or KindNoResults.
func (s *StackExchange) Search(ctx context.Context, query, key string) (types.ResultPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BuildURL(query, key), nil)
	if err != nil {
		return types.ResultPage{}, transportErr(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	throttle := s.Throttle
	if throttle == nil {
		throttle = httputil.NewThrottle(0, 0)
	}

	resp, err := throttle.Do(ctx, client, req)
	if err != nil {
		return types.ResultPage{}, transportErr(redactKey(err))
	}
	defer httputil.DrainClose(resp.Body)

	var sr stackExchangeResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&sr)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Stack Exchange reports bad or exhausted keys as HTTP 400 with an
		// error wrapper; anything else is a transport failure.
		if decodeErr == nil && sr.ErrorMessage != "" {
			return types.ResultPage{}, rejected(sr.ErrorMessage)
		}
		return types.ResultPage{}, transportStatus(resp.StatusCode)
	}
	if decodeErr != nil {
		return types.ResultPage{}, transportErr(fmt.Errorf("parsing Stack Exchange response: %w", decodeErr))
	}
	if sr.ErrorMessage != "" || sr.ErrorID != 0 {
		msg := sr.ErrorMessage
		if msg == "" {
			msg = sr.ErrorName
		}
		return types.ResultPage{}, rejected(msg)
	}
	if len(sr.Items) == 0 {
		return types.ResultPage{}, noResults(query)
	}

	items := make([]types.Question, 0, min(len(sr.Items), types.DisplayLimit))
	for _, it := range sr.Items {
		if len(items) == types.DisplayLimit {
			break
		}
		items = append(items, it.toQuestion())
	}
	return types.NewResultPage(query, items), nil
}

func (it stackExchangeItem) toQuestion() types.Question {
	tags := make([]string, len(it.Tags))
	copy(tags, it.Tags)
	return types.Question{
		Title:       html.UnescapeString(it.Title),
		Link:        it.Link,
		Score:       it.Score,
		AnswerCount: it.AnswerCount,
		ViewCount:   it.ViewCount,
		Tags:        tags,
		IsAnswered:  it.IsAnswered,
	}
}

// redactKey masks the key query parameter in the URL that net/http puts
// into client errors, so the error text is safe to render and log.
func redactKey(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	u, perr := url.Parse(ue.URL)
	if perr != nil {
		ue.URL = "[redacted]"
		return err
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	ue.URL = u.String()
	return err
}

// Stack Exchange API JSON structures.
type stackExchangeResponse struct {
	Items          []stackExchangeItem `json:"items"`
	HasMore        bool                `json:"has_more"`
	QuotaMax       int                 `json:"quota_max"`
	QuotaRemaining int                 `json:"quota_remaining"`
	ErrorID        int                 `json:"error_id"`
	ErrorName      string              `json:"error_name"`
	ErrorMessage   string              `json:"error_message"`
}

type stackExchangeItem struct {
	QuestionID  int      `json:"question_id"`
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Score       int      `json:"score"`
	AnswerCount int      `json:"answer_count"`
	ViewCount   int      `json:"view_count"`
	Tags        []string `json:"tags"`
	IsAnswered  bool     `json:"is_answered"`
}
