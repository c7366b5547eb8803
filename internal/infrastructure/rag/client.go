package rag

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

	"talent-match/internal/config"
	"talent-match/internal/logger"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	ErrDisabled      = errors.New("remote matching disabled")
	ErrUnavailable   = errors.New("remote matching unavailable")
	ErrUnexpectedRes = errors.New("unexpected remote matching response")
)

const maxBodyBytes = 4 << 20

// StatusError is a non-2xx answer from the remote service.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", ErrUnexpectedRes, e.Code)
}

func (e *StatusError) Is(target error) bool { return target == ErrUnexpectedRes }

// countsAsSuccess keeps caller cancellations and 4xx answers from tripping the breaker.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code < http.StatusInternalServerError
	}
	return false
}

type Query struct {
	Page  int
	Limit int
	TopK  int
}

type Client struct {
	baseURL string
	topK    int
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewClient(cfg config.RAGConfig, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = 50
	}

	log = logger.Named(log, "rag")
	st := gobreaker.Settings{
		Name:     "rag",
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		IsSuccessful: countsAsSuccess,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= 3 {
				return true
			}
			if counts.Requests < 20 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) > 0.05
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		topK:    topK,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
		breaker: gobreaker.NewCircuitBreaker(st),
		logger:  log,
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

func (c *Client) MatchJobsForCV(ctx context.Context, cvID string, q Query) (Page[JobMatch], error) {
	body, err := c.get(ctx, "/rag/match-all-jobs-for-cv-doc/"+url.PathEscape(cvID), q)
	if err != nil {
		return Page[JobMatch]{}, err
	}
	return decodeJobMatches(body, q.Limit)
}

func (c *Client) MatchCVsForRequirement(ctx context.Context, reqID string, q Query) (Page[CandidateMatch], error) {
	body, err := c.get(ctx, "/rag/match-all-cvs-for-job-doc/"+url.PathEscape(reqID), q)
	if err != nil {
		return Page[CandidateMatch]{}, err
	}
	return decodeCandidateMatches(body, q.Limit)
}

func (c *Client) get(ctx context.Context, path string, q Query) ([]byte, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(max(q.Page, 1)))
	params.Set("limit", strconv.Itoa(max(q.Limit, 1)))
	topK := q.TopK
	if topK <= 0 {
		topK = c.topK
	}
	params.Set("topK", strconv.Itoa(topK))
	endpoint := c.baseURL + path + "?" + params.Encode()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	out, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		res, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		b, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
		if err != nil {
			return nil, err
		}
		c.logger.Debug("remote match call",
			zap.String("path", path),
			zap.Int("status", res.StatusCode),
			zap.Duration("took", time.Since(start)),
		)
		if res.StatusCode < 200 || res.StatusCode > 299 {
			c.logger.Warn("remote match call failed",
				zap.String("path", path),
				zap.Int("status", res.StatusCode),
				zap.String("body", logger.TruncateForLog(string(b), 200)),
			)
			return nil, &StatusError{Code: res.StatusCode}
		}
		return b, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}
	return out.([]byte), nil
}
