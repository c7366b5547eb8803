package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"talent-match/internal/domain/cv"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/requirement"
	"talent-match/internal/infrastructure/rag"
	"talent-match/internal/metrics"
	"talent-match/internal/seed"

	"github.com/google/uuid"
)

var owner = uuid.MustParse("7b0c6f6e-3f55-4a3e-9b7e-1d2c3b4a5f60")

func ownedCV(c cv.CV) cv.CV {
	c.CreatedBy = owner
	return c
}

func ownedRequirement(r requirement.Requirement) requirement.Requirement {
	r.CreatedBy = owner
	return r
}

func sampleJobs() []job.Job {
	return []job.Job{
		{
			ID:          uuid.New(),
			Title:       "Accountant",
			CompanyName: "Ledger Co",
			Location:    job.Location{City: "Đà Nẵng"},
			Skills:      []job.Skill{{Name: "Excel"}},
			Status:      job.StatusPublished,
		},
		{
			ID:          uuid.New(),
			Title:       "Frontend Developer",
			CompanyName: "Pixel Studio",
			Location:    job.Location{City: "Hà Nội"},
			Seniority:   "Senior",
			Skills:      []job.Skill{{Name: "React"}, {Name: "TypeScript", Level: "advanced"}},
			Status:      job.StatusPublished,
		},
	}
}

type matchingFixture struct {
	uc      *Matching
	jobs    *memJobs
	cvs     *memCVs
	reqs    *memRequirements
	remote  *stubRemote
	cache   *memCache
	metrics *countingMetrics
	cv      cv.CV
	req     requirement.Requirement
}

func newMatchingFixture() *matchingFixture {
	f := &matchingFixture{
		jobs:    newMemJobs(sampleJobs()...),
		cvs:     newMemCVs(seed.Candidates()...),
		remote:  &stubRemote{},
		cache:   newMemCache(),
		metrics: newCountingMetrics(),
		cv:      ownedCV(seed.CVs()[0]),
		req:     ownedRequirement(seed.Requirements()[0]),
	}
	f.cvs.put(f.cv)
	f.reqs = newMemRequirements(f.req)
	f.uc = NewMatchingUsecase(MatchingDeps{
		Jobs:         f.jobs,
		CVs:          f.cvs,
		Requirements: f.reqs,
		Remote:       f.remote,
		Cache:        f.cache,
		Metrics:      f.metrics,
	})
	return f
}

func TestRankJobsForCV_LocalSortsAndFilters(t *testing.T) {
	f := newMatchingFixture()

	page, err := f.uc.RankJobsForCV(context.Background(), owner, f.cv.ID, MatchParams{Mode: MatchModeLocal, MinScore: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Source != metrics.SourceLocal {
		t.Fatalf("expected local source, got %q", page.Source)
	}
	if len(page.Items) != 1 || page.Total != 1 || page.TotalPages != 1 {
		t.Fatalf("expected only the frontend job, got %+v", page)
	}
	top := page.Items[0]
	if top.Title != "Frontend Developer" {
		t.Fatalf("unexpected top job %q", top.Title)
	}
	if len(top.MatchedSkills) != 2 || top.MatchedSkills[0] != "React" || top.MatchedSkills[1] != "TypeScript" {
		t.Fatalf("unexpected matched skills %v", top.MatchedSkills)
	}
	if top.Breakdown == nil || top.Breakdown.Skills != 50 {
		t.Fatalf("expected full skills credit, got %+v", top.Breakdown)
	}
	if f.remote.calls != 0 {
		t.Fatalf("local mode must not call remote")
	}
	if f.metrics.rankings["jobs/local"] != 1 {
		t.Fatalf("expected one local ranking observation, got %v", f.metrics.rankings)
	}
}

func TestRankJobsForCV_Forbidden(t *testing.T) {
	f := newMatchingFixture()
	_, err := f.uc.RankJobsForCV(context.Background(), uuid.New(), f.cv.ID, MatchParams{})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRankJobsForCV_UnknownCV(t *testing.T) {
	f := newMatchingFixture()
	_, err := f.uc.RankJobsForCV(context.Background(), owner, uuid.New(), MatchParams{})
	if !errors.Is(err, ErrCVNotFound) {
		t.Fatalf("expected ErrCVNotFound, got %v", err)
	}
}

func TestRankJobsForCV_InvalidParams(t *testing.T) {
	f := newMatchingFixture()
	cases := []struct {
		name string
		p    MatchParams
		want error
	}{
		{"negative page", MatchParams{Page: -1}, ErrInvalidInput},
		{"limit too large", MatchParams{Limit: 101}, ErrInvalidInput},
		{"min score above 100", MatchParams{MinScore: 101}, ErrInvalidInput},
		{"unknown mode", MatchParams{Mode: "psychic"}, ErrInvalidMatchMode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.RankJobsForCV(context.Background(), owner, f.cv.ID, tc.p)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRankJobsForCV_RemoteModeFailsWhenDisabled(t *testing.T) {
	f := newMatchingFixture()
	_, err := f.uc.RankJobsForCV(context.Background(), owner, f.cv.ID, MatchParams{Mode: MatchModeRemote})
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}
}

func TestRankJobsForCV_AutoFallsBackOnRemoteError(t *testing.T) {
	f := newMatchingFixture()
	f.remote.enabled = true
	f.remote.err = rag.ErrUnavailable

	page, err := f.uc.RankJobsForCV(context.Background(), owner, f.cv.ID, MatchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Source != metrics.SourceLocal {
		t.Fatalf("expected local fallback, got %q", page.Source)
	}
	if f.remote.calls != 1 || f.metrics.fallbacks != 1 {
		t.Fatalf("expected one remote call and one fallback, got %d/%d", f.remote.calls, f.metrics.fallbacks)
	}
}

func TestRankJobsForCV_FallbackIsNotCached(t *testing.T) {
	f := newMatchingFixture()
	f.remote.enabled = true
	f.remote.err = rag.ErrUnavailable

	first, err := f.uc.RankJobsForCV(context.Background(), owner, f.cv.ID, MatchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Source != metrics.SourceLocal {
		t.Fatalf("expected local fallback, got %q", first.Source)
	}
	if len(f.cache.data) != 0 {
		t.Fatalf("fallback page must not be cached, cache has %d entries", len(f.cache.data))
	}

	f.remote.err = nil
	f.remote.jobs = rag.Page[rag.JobMatch]{
		Matches:    []rag.JobMatch{{JobID: "a", JobTitle: "React Engineer", Score: 88}},
		TotalItems: 1,
		TotalPages: 1,
	}
	second, err := f.uc.RankJobsForCV(context.Background(), owner, f.cv.ID, MatchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Source != metrics.SourceRemote || f.remote.calls != 2 {
		t.Fatalf("expected the recovered remote to answer, got source %q after %d calls", second.Source, f.remote.calls)
	}

	third, err := f.uc.RankJobsForCV(context.Background(), owner, f.cv.ID, MatchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third.Source != metrics.SourceRemote || f.remote.calls != 2 {
		t.Fatalf("expected the remote page from cache, got source %q after %d calls", third.Source, f.remote.calls)
	}
}

func TestRankCandidatesForRequirement_FallbackIsNotCached(t *testing.T) {
	f := newMatchingFixture()
	f.remote.enabled = true
	f.remote.err = rag.ErrUnavailable

	first, err := f.uc.RankCandidatesForRequirement(context.Background(), owner, f.req.ID, MatchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Source != metrics.SourceLocal || len(f.cache.data) != 0 {
		t.Fatalf("expected an uncached local fallback, got source %q with %d cache entries", first.Source, len(f.cache.data))
	}

	f.remote.err = nil
	f.remote.candidates = rag.Page[rag.CandidateMatch]{
		Matches:    []rag.CandidateMatch{{CVID: "c1", Fullname: "Trần Thị B", Score: 77}},
		TotalItems: 1,
		TotalPages: 1,
	}
	second, err := f.uc.RankCandidatesForRequirement(context.Background(), owner, f.req.ID, MatchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Source != metrics.SourceRemote || f.remote.calls != 2 {
		t.Fatalf("expected the recovered remote to answer, got source %q after %d calls", second.Source, f.remote.calls)
	}
}

func TestRankJobsForCV_DisabledRemoteIsNotAFallback(t *testing.T) {
	f := newMatchingFixture()

	page, err := f.uc.RankJobsForCV(context.Background(), owner, f.cv.ID, MatchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Source != metrics.SourceLocal {
		t.Fatalf("expected local scoring, got %q", page.Source)
	}
	if f.remote.calls != 0 || f.metrics.fallbacks != 0 {
		t.Fatalf("disabled remote must be skipped quietly, got %d calls and %d fallbacks", f.remote.calls, f.metrics.fallbacks)
	}
	if len(f.cache.data) != 1 {
		t.Fatalf("expected the local page to be cached, cache has %d entries", len(f.cache.data))
	}
}

func TestRankJobsForCV_RemoteResults(t *testing.T) {
	f := newMatchingFixture()
	f.remote.enabled = true
	f.remote.jobs = rag.Page[rag.JobMatch]{
		Matches: []rag.JobMatch{
			{JobID: "a", JobTitle: "React Engineer", Score: 88, Skills: []string{"React", "GraphQL"}},
			{JobID: "b", JobTitle: "Data Entry", Score: 20},
		},
		TotalItems: 12,
		TotalPages: 2,
	}

	page, err := f.uc.RankJobsForCV(context.Background(), owner, f.cv.ID, MatchParams{MinScore: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Source != metrics.SourceRemote {
		t.Fatalf("expected remote source, got %q", page.Source)
	}
	if len(page.Items) != 1 || page.Items[0].JobID != "a" {
		t.Fatalf("expected min score to drop the weak match, got %+v", page.Items)
	}
	if page.Total != 12 || page.TotalPages != 2 {
		t.Fatalf("expected remote totals, got %d/%d", page.Total, page.TotalPages)
	}
	if got := page.Items[0].MatchedSkills; len(got) != 1 || got[0] != "React" {
		t.Fatalf("unexpected matched skills %v", got)
	}
	if f.jobs.pooled != 0 {
		t.Fatalf("remote success must not load the local pool")
	}
}

func TestRankJobsForCV_CacheHit(t *testing.T) {
	f := newMatchingFixture()
	p := MatchParams{Mode: MatchModeLocal}

	first, err := f.uc.RankJobsForCV(context.Background(), owner, f.cv.ID, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := f.uc.RankJobsForCV(context.Background(), owner, f.cv.ID, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.jobs.pooled != 1 {
		t.Fatalf("expected the second call to be served from cache, pool loaded %d times", f.jobs.pooled)
	}
	if f.metrics.hits != 1 || f.metrics.misses != 1 {
		t.Fatalf("expected one hit and one miss, got %d/%d", f.metrics.hits, f.metrics.misses)
	}
	if len(first.Items) != len(second.Items) || first.Items[0].Score != second.Items[0].Score {
		t.Fatalf("cached page differs: %+v vs %+v", first, second)
	}
}

func TestRankCandidatesForRequirement_Local(t *testing.T) {
	f := newMatchingFixture()

	page, err := f.uc.RankCandidatesForRequirement(context.Background(), owner, f.req.ID, MatchParams{Mode: MatchModeLocal, Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) == 0 {
		t.Fatalf("expected candidates")
	}
	if page.Items[0].Fullname != "Nguyễn Văn A" || page.Items[0].Score != 90 {
		t.Fatalf("unexpected top candidate %+v", page.Items[0])
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i-1].Score < page.Items[i].Score {
			t.Fatalf("items not sorted by score at %d", i)
		}
	}
}

func TestRankCandidatesForRequirement_Pagination(t *testing.T) {
	f := newMatchingFixture()

	all, err := f.uc.RankCandidatesForRequirement(context.Background(), owner, f.req.ID, MatchParams{Mode: MatchModeLocal, Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := f.uc.RankCandidatesForRequirement(context.Background(), owner, f.req.ID, MatchParams{Mode: MatchModeLocal, Page: 2, Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second.Items) != 1 || second.Items[0].CVID != all.Items[1].CVID {
		t.Fatalf("page 2 should hold the second ranked candidate, got %+v", second.Items)
	}
	if second.Total != all.Total || second.TotalPages != all.Total {
		t.Fatalf("unexpected totals %d/%d", second.Total, second.TotalPages)
	}

	past, err := f.uc.RankCandidatesForRequirement(context.Background(), owner, f.req.ID, MatchParams{Mode: MatchModeLocal, Page: 50, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(past.Items) != 0 {
		t.Fatalf("expected empty page past the end")
	}
}

func TestRankCandidatesForRequirement_Forbidden(t *testing.T) {
	f := newMatchingFixture()
	_, err := f.uc.RankCandidatesForRequirement(context.Background(), uuid.New(), f.req.ID, MatchParams{})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestScoreJobForCV(t *testing.T) {
	f := newMatchingFixture()
	target := f.jobs.pool[1]

	item, err := f.uc.ScoreJobForCV(context.Background(), owner, target.ID, f.cv.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.JobID != target.ID.String() || item.Breakdown == nil {
		t.Fatalf("unexpected item %+v", item)
	}

	_, err = f.uc.ScoreJobForCV(context.Background(), owner, uuid.New(), f.cv.ID)
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestExportCandidateMatches(t *testing.T) {
	f := newMatchingFixture()

	b, err := f.uc.ExportCandidateMatches(context.Background(), owner, f.req.ID, MatchParams{Mode: MatchModeLocal})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("PK")) {
		t.Fatalf("expected an xlsx zip payload")
	}

	_, err = f.uc.ExportCandidateMatches(context.Background(), uuid.New(), f.req.ID, MatchParams{})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
