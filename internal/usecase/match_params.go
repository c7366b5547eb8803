package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

const (
	MatchModeAuto   = "auto"
	MatchModeRemote = "remote"
	MatchModeLocal  = "local"

	defaultMatchLimit = 10
	maxMatchLimit     = 100
)

type MatchParams struct {
	Page     int
	Limit    int
	MinScore int
	Mode     string
}

func (p MatchParams) normalize() (MatchParams, error) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = defaultMatchLimit
	}
	if p.Page < 1 || p.Limit < 1 || p.Limit > maxMatchLimit {
		return MatchParams{}, ErrInvalidInput
	}
	if p.MinScore < 0 || p.MinScore > 100 {
		return MatchParams{}, ErrInvalidInput
	}
	p.Mode = strings.ToLower(strings.TrimSpace(p.Mode))
	switch p.Mode {
	case "":
		p.Mode = MatchModeAuto
	case MatchModeAuto, MatchModeRemote, MatchModeLocal:
	default:
		return MatchParams{}, ErrInvalidMatchMode
	}
	return p, nil
}

func (p MatchParams) offset() int {
	return (p.Page - 1) * p.Limit
}

func (p MatchParams) cacheHash() string {
	b, _ := json.Marshal(struct {
		Page     int    `json:"page"`
		Limit    int    `json:"limit"`
		MinScore int    `json:"min_score"`
		Mode     string `json:"mode"`
	}{p.Page, p.Limit, p.MinScore, p.Mode})
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8])
}

func normalizeValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func totalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// paginate returns the window of items for the page, empty past the end.
func paginate[T any](items []T, p MatchParams) []T {
	start := p.offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
