package services

import (
	"context"
	"easy-shop/models"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const maxFeedBody = 2 << 20

// FeedService reads the two decorative third-party feeds. Each provider sits
// behind its own circuit breaker; there is no retry.
type FeedService struct {
	client     *http.Client
	newsURL    string
	newsAPIKey string
	ratesURL   string
	logger     *zap.Logger

	newsBreaker  *gobreaker.CircuitBreaker[[]byte]
	ratesBreaker *gobreaker.CircuitBreaker[[]byte]
}

func NewFeedService(newsURL, newsAPIKey, ratesURL string, timeout time.Duration, logger *zap.Logger) *FeedService {
	return &FeedService{
		client:       &http.Client{Timeout: timeout},
		newsURL:      newsURL,
		newsAPIKey:   newsAPIKey,
		ratesURL:     strings.TrimRight(ratesURL, "/"),
		logger:       logger,
		newsBreaker:  newFeedBreaker("news", logger),
		ratesBreaker: newFeedBreaker("rates", logger),
	}
}

func newFeedBreaker(name string, logger *zap.Logger) *gobreaker.CircuitBreaker[[]byte] {
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("feed breaker state changed",
				zap.String("feed", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// Headlines returns title and description of the provider's top articles.
func (s *FeedService) Headlines(ctx context.Context) ([]models.Headline, error) {
	endpoint := s.newsURL
	if s.newsAPIKey != "" {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		endpoint += sep + "apiKey=" + url.QueryEscape(s.newsAPIKey)
	}

	body, err := s.newsBreaker.Execute(func() ([]byte, error) {
		return s.fetch(ctx, endpoint)
	})
	if err != nil {
		return nil, s.feedErr("news", err)
	}

	return parseHeadlines(body)
}

// Rates returns the exchange rates relative to base.
func (s *FeedService) Rates(ctx context.Context, base string) (*models.ExchangeRates, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		base = "USD"
	}
	if len(base) != 3 {
		return nil, &models.ValidationError{Field: "base", Message: "Base must be a three-letter currency code"}
	}

	body, err := s.ratesBreaker.Execute(func() ([]byte, error) {
		return s.fetch(ctx, s.ratesURL+"/"+url.PathEscape(base))
	})
	if err != nil {
		return nil, s.feedErr("rates", err)
	}

	return parseRates(body, base)
}

func (s *FeedService) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBody))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.New("response is not valid JSON")
	}
	return body, nil
}

func (s *FeedService) feedErr(feed string, err error) error {
	s.logger.Warn("feed request failed", zap.String("feed", feed), zap.Error(err))
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s feed: %w", feed, models.ErrStoreTimeout)
	}
	return fmt.Errorf("%s feed: %w: %v", feed, models.ErrFeedUnavailable, err)
}

func parseHeadlines(body []byte) ([]models.Headline, error) {
	articles := gjson.GetBytes(body, "articles")
	if !articles.IsArray() {
		return nil, fmt.Errorf("news feed: %w: missing articles", models.ErrFeedUnavailable)
	}

	headlines := []models.Headline{}
	articles.ForEach(func(_, a gjson.Result) bool {
		title := a.Get("title").String()
		if title != "" {
			headlines = append(headlines, models.Headline{
				Title:       title,
				Description: a.Get("description").String(),
			})
		}
		return true
	})
	return headlines, nil
}

func parseRates(body []byte, base string) (*models.ExchangeRates, error) {
	result := gjson.ParseBytes(body)
	if r := result.Get("result"); r.Exists() && r.String() != "success" {
		return nil, fmt.Errorf("rates feed: %w: %s", models.ErrFeedUnavailable, result.Get("error-type").String())
	}

	rates := result.Get("rates")
	if !rates.IsObject() {
		return nil, fmt.Errorf("rates feed: %w: missing rates", models.ErrFeedUnavailable)
	}

	out := &models.ExchangeRates{Base: base, Rates: make(map[string]float64)}
	if code := result.Get("base_code").String(); code != "" {
		out.Base = code
	}
	rates.ForEach(func(code, rate gjson.Result) bool {
		out.Rates[code.String()] = rate.Float()
		return true
	})
	return out, nil
}
