package rag

import (
	"fmt"
	"math"
	"strings"

	"talent-match/internal/mapper"

	"github.com/tidwall/gjson"
)

type Page[T any] struct {
	Matches    []T
	TotalItems int
	TotalPages int
}

type JobMatch struct {
	JobID       string
	JobTitle    string
	CompanyName string
	Score       int
	TextPreview string

	Location   string
	Seniority  string
	Department string
	Salary     string
	Skills     []string
}

type CandidateMatch struct {
	CVID        string
	Fullname    string
	Score       int
	TextPreview string

	Headline          string
	Location          string
	Education         string
	Skills            []string
	YearsOfExperience int
	ExperienceLevel   string
}

func decodePage(body []byte, limit int, each func(m gjson.Result)) (int, int, error) {
	if !gjson.ValidBytes(body) {
		return 0, 0, fmt.Errorf("%w: invalid json", ErrUnexpectedRes)
	}
	root := gjson.ParseBytes(body)
	matches := root.Get("matches")
	if !matches.IsArray() {
		return 0, 0, fmt.Errorf("%w: missing matches", ErrUnexpectedRes)
	}

	n := 0
	matches.ForEach(func(_, m gjson.Result) bool {
		if m.IsObject() {
			each(m)
			n++
		}
		return true
	})

	total := int(root.Get("totalItems").Int())
	if total <= 0 {
		total = n
	}
	pages := int(root.Get("totalPages").Int())
	if pages <= 0 && limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return total, pages, nil
}

func decodeJobMatches(body []byte, limit int) (Page[JobMatch], error) {
	out := Page[JobMatch]{Matches: make([]JobMatch, 0)}
	total, pages, err := decodePage(body, limit, func(m gjson.Result) {
		preview := m.Get("textPreview").String()
		out.Matches = append(out.Matches, JobMatch{
			JobID:       m.Get("jobId").String(),
			JobTitle:    strings.TrimSpace(m.Get("jobTitle").String()),
			CompanyName: strings.TrimSpace(m.Get("companyName").String()),
			Score:       normalizeScore(m.Get("score").Float()),
			TextPreview: preview,
			Location:    mapper.PreviewField(preview, "Location"),
			Seniority:   mapper.PreviewField(preview, "Seniority"),
			Department:  mapper.PreviewField(preview, "Department"),
			Salary:      mapper.PreviewField(preview, "Salary"),
			Skills:      mapper.SplitList(mapper.PreviewField(preview, "Skills")),
		})
	})
	if err != nil {
		return Page[JobMatch]{}, err
	}
	out.TotalItems, out.TotalPages = total, pages
	return out, nil
}

func decodeCandidateMatches(body []byte, limit int) (Page[CandidateMatch], error) {
	out := Page[CandidateMatch]{Matches: make([]CandidateMatch, 0)}
	total, pages, err := decodePage(body, limit, func(m gjson.Result) {
		preview := m.Get("textPreview").String()
		years, level := mapper.PreviewExperience(preview)
		headline := mapper.PreviewField(preview, "Target role")
		if headline == "" {
			headline = mapper.PreviewField(preview, "Headline")
		}
		out.Matches = append(out.Matches, CandidateMatch{
			CVID:              m.Get("cvId").String(),
			Fullname:          strings.TrimSpace(m.Get("fullname").String()),
			Score:             normalizeScore(m.Get("score").Float()),
			TextPreview:       preview,
			Headline:          headline,
			Location:          mapper.PreviewField(preview, "Location"),
			Education:         mapper.PreviewField(preview, "Education"),
			Skills:            mapper.SplitList(mapper.PreviewField(preview, "Skills")),
			YearsOfExperience: years,
			ExperienceLevel:   level,
		})
	})
	if err != nil {
		return Page[CandidateMatch]{}, err
	}
	out.TotalItems, out.TotalPages = total, pages
	return out, nil
}

// normalizeScore maps similarity in [0,1] to a percentage and clamps to [0,100].
func normalizeScore(s float64) int {
	if s > 0 && s <= 1 {
		s *= 100
	}
	v := int(math.Round(s))
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
