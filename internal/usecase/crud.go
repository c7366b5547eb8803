package usecase

import (
	"context"
	"strings"

	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	actionCreated = "created"
	actionUpdated = "updated"
	actionDeleted = "deleted"
)

// ChangeNotifier publishes entity change events to live clients.
type ChangeNotifier interface {
	Notify(eventType, action string, id uuid.UUID)
}

// MatchInvalidator drops cached rankings affected by a change.
type MatchInvalidator interface {
	InvalidateJobsChanged(ctx context.Context) error
	InvalidateCVChanged(ctx context.Context, cvID uuid.UUID) error
	InvalidateRequirementChanged(ctx context.Context, reqID uuid.UUID) error
}

type ListParams struct {
	Search string
	Sort   string
	Page   int
	Limit  int
}

func (p ListParams) normalize() (ListParams, error) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = defaultMatchLimit
	}
	if p.Page < 1 || p.Limit < 1 || p.Limit > maxMatchLimit {
		return ListParams{}, ErrInvalidInput
	}
	p.Sort = strings.ToLower(strings.TrimSpace(p.Sort))
	switch p.Sort {
	case "":
		p.Sort = repository.SortLatest
	case repository.SortLatest, repository.SortOldest:
	default:
		return ListParams{}, ErrInvalidInput
	}
	p.Search = strings.TrimSpace(p.Search)
	return p, nil
}

func (p ListParams) offset() int {
	return (p.Page - 1) * p.Limit
}

type PageInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func pageInfo(p ListParams, total int) PageInfo {
	return PageInfo{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: totalPages(total, p.Limit)}
}

// changeHooks bundles the side effects every mutation triggers. Failures are logged, never returned.
type changeHooks struct {
	cache    MatchInvalidator
	notifier ChangeNotifier
	logger   *zap.Logger
}

func newChangeHooks(cache MatchInvalidator, notifier ChangeNotifier, logger *zap.Logger) changeHooks {
	if logger == nil {
		logger = zap.NewNop()
	}
	return changeHooks{cache: cache, notifier: notifier, logger: logger}
}

func (h changeHooks) invalidate(what string, err error) {
	if err != nil {
		h.logger.Warn("match cache invalidation failed", zap.String("entity", what), zap.Error(err))
	}
}

func (h changeHooks) notify(eventType, action string, id uuid.UUID) {
	if h.notifier != nil {
		h.notifier.Notify(eventType, action, id)
	}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
