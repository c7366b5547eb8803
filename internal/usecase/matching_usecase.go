package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"talent-match/internal/domain/cv"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/matching"
	"talent-match/internal/domain/requirement"
	"talent-match/internal/export"
	"talent-match/internal/infrastructure/cache"
	"talent-match/internal/infrastructure/rag"
	"talent-match/internal/mapper"
	"talent-match/internal/metrics"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	kindJobs       = "jobs"
	kindCandidates = "candidates"

	exportLimit = 100
)

type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type RemoteMatcher interface {
	Enabled() bool
	MatchJobsForCV(ctx context.Context, cvID string, q rag.Query) (rag.Page[rag.JobMatch], error)
	MatchCVsForRequirement(ctx context.Context, reqID string, q rag.Query) (rag.Page[rag.CandidateMatch], error)
}

type MatchMetrics interface {
	ObserveRanking(kind, source string, took time.Duration)
	Fallback(kind string)
	Cache(kind string, hit bool)
}

type MatchingUsecase interface {
	RankJobsForCV(ctx context.Context, userID, cvID uuid.UUID, params MatchParams) (JobMatchPage, error)
	RankCandidatesForRequirement(ctx context.Context, userID, reqID uuid.UUID, params MatchParams) (CandidateMatchPage, error)
	ScoreJobForCV(ctx context.Context, userID, jobID, cvID uuid.UUID) (JobMatchItem, error)
	ExportCandidateMatches(ctx context.Context, userID, reqID uuid.UUID, params MatchParams) ([]byte, error)
}

type MatchingDeps struct {
	Jobs         repository.JobRepository
	CVs          repository.CVRepository
	Requirements repository.RequirementRepository
	Remote       RemoteMatcher
	Cache        MatchCache
	Metrics      MatchMetrics
	Logger       *zap.Logger
	PoolSize     int
	CacheTTL     time.Duration
}

type Matching struct {
	jobs         repository.JobRepository
	cvs          repository.CVRepository
	requirements repository.RequirementRepository
	remote       RemoteMatcher
	cache        MatchCache
	metrics      MatchMetrics
	logger       *zap.Logger
	poolSize     int
	cacheTTL     time.Duration
	now          func() time.Time
}

func NewMatchingUsecase(d MatchingDeps) *Matching {
	m := &Matching{
		jobs:         d.Jobs,
		cvs:          d.CVs,
		requirements: d.Requirements,
		remote:       d.Remote,
		cache:        d.Cache,
		metrics:      d.Metrics,
		logger:       d.Logger,
		poolSize:     d.PoolSize,
		cacheTTL:     d.CacheTTL,
		now:          time.Now,
	}
	if m.metrics == nil {
		m.metrics = (*metrics.Registry)(nil)
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.poolSize <= 0 {
		m.poolSize = 500
	}
	return m
}

func (u *Matching) RankJobsForCV(ctx context.Context, userID, cvID uuid.UUID, params MatchParams) (JobMatchPage, error) {
	p, err := params.normalize()
	if err != nil {
		return JobMatchPage{}, err
	}
	c, err := u.ownedCV(ctx, userID, cvID)
	if err != nil {
		return JobMatchPage{}, err
	}

	key := cache.JobMatchesKey(cvID, p.cacheHash())
	var cached JobMatchPage
	if u.cacheGet(ctx, kindJobs, key, &cached) {
		return cached, nil
	}

	start := u.now()
	page, degraded, err := u.remoteJobs(ctx, c, p)
	if err != nil {
		return JobMatchPage{}, err
	}
	if page == nil {
		local, err := u.localJobs(ctx, c, p)
		if err != nil {
			return JobMatchPage{}, err
		}
		page = &local
	}
	u.metrics.ObserveRanking(kindJobs, page.Source, u.now().Sub(start))

	if !degraded {
		u.cacheSet(ctx, key, page)
	}
	return *page, nil
}

// remoteJobs returns a nil page without error when the caller should score locally.
// degraded reports that a wanted remote call failed; such pages are not cached.
func (u *Matching) remoteJobs(ctx context.Context, c cv.CV, p MatchParams) (page *JobMatchPage, degraded bool, err error) {
	if !u.useRemote(p) {
		return nil, false, nil
	}
	if u.remote == nil || !u.remote.Enabled() {
		return nil, true, u.remoteFailure(kindJobs, p, rag.ErrDisabled)
	}

	res, err := u.remote.MatchJobsForCV(ctx, c.ID.String(), rag.Query{Page: p.Page, Limit: p.Limit})
	if err != nil {
		return nil, true, u.remoteFailure(kindJobs, p, err)
	}

	items := make([]JobMatchItem, 0, len(res.Matches))
	for _, m := range res.Matches {
		if m.Score < p.MinScore {
			continue
		}
		items = append(items, JobMatchItem{
			JobID:         m.JobID,
			Title:         m.JobTitle,
			CompanyName:   m.CompanyName,
			Location:      m.Location,
			Seniority:     m.Seniority,
			Skills:        nonNilStrings(m.Skills),
			Score:         m.Score,
			MatchedSkills: matchedAgainst(m.Skills, c.SkillNames()),
			Reason:        m.TextPreview,
		})
	}
	return &JobMatchPage{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      res.TotalItems,
		TotalPages: res.TotalPages,
		Source:     metrics.SourceRemote,
	}, false, nil
}

func (u *Matching) localJobs(ctx context.Context, c cv.CV, p MatchParams) (JobMatchPage, error) {
	pool, err := u.jobs.ListForMatching(ctx, u.poolSize)
	if err != nil {
		return JobMatchPage{}, fmt.Errorf("%w: list jobs: %v", ErrInternal, err)
	}

	resume := mapper.Resume(c)
	items := make([]JobMatchItem, 0, len(pool))
	for _, j := range pool {
		res := matching.ScoreJob(mapper.JobTarget(j), resume)
		if res.Score < p.MinScore {
			continue
		}
		items = append(items, jobItem(j, res))
	}
	sort.SliceStable(items, func(a, b int) bool { return items[a].Score > items[b].Score })

	return JobMatchPage{
		Items:      paginate(items, p),
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      len(items),
		TotalPages: totalPages(len(items), p.Limit),
		Source:     metrics.SourceLocal,
	}, nil
}

func (u *Matching) RankCandidatesForRequirement(ctx context.Context, userID, reqID uuid.UUID, params MatchParams) (CandidateMatchPage, error) {
	p, err := params.normalize()
	if err != nil {
		return CandidateMatchPage{}, err
	}
	req, err := u.ownedRequirement(ctx, userID, reqID)
	if err != nil {
		return CandidateMatchPage{}, err
	}

	key := cache.CandidateMatchesKey(reqID, p.cacheHash())
	var cached CandidateMatchPage
	if u.cacheGet(ctx, kindCandidates, key, &cached) {
		return cached, nil
	}

	start := u.now()
	page, degraded, err := u.remoteCandidates(ctx, req, p)
	if err != nil {
		return CandidateMatchPage{}, err
	}
	if page == nil {
		local, err := u.localCandidates(ctx, req, p)
		if err != nil {
			return CandidateMatchPage{}, err
		}
		page = &local
	}
	u.metrics.ObserveRanking(kindCandidates, page.Source, u.now().Sub(start))

	if !degraded {
		u.cacheSet(ctx, key, page)
	}
	return *page, nil
}

func (u *Matching) remoteCandidates(ctx context.Context, req requirement.Requirement, p MatchParams) (page *CandidateMatchPage, degraded bool, err error) {
	if !u.useRemote(p) {
		return nil, false, nil
	}
	if u.remote == nil || !u.remote.Enabled() {
		return nil, true, u.remoteFailure(kindCandidates, p, rag.ErrDisabled)
	}

	res, err := u.remote.MatchCVsForRequirement(ctx, req.ID.String(), rag.Query{Page: p.Page, Limit: p.Limit})
	if err != nil {
		return nil, true, u.remoteFailure(kindCandidates, p, err)
	}

	items := make([]CandidateMatchItem, 0, len(res.Matches))
	for _, m := range res.Matches {
		if m.Score < p.MinScore {
			continue
		}
		items = append(items, CandidateMatchItem{
			CVID:              m.CVID,
			Fullname:          m.Fullname,
			Headline:          m.Headline,
			Location:          m.Location,
			ExperienceLevel:   m.ExperienceLevel,
			YearsOfExperience: m.YearsOfExperience,
			Skills:            nonNilStrings(m.Skills),
			Score:             m.Score,
			MatchedSkills:     matchedAgainst(req.Skills, m.Skills),
			Reason:            m.TextPreview,
		})
	}
	return &CandidateMatchPage{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      res.TotalItems,
		TotalPages: res.TotalPages,
		Source:     metrics.SourceRemote,
	}, false, nil
}

func (u *Matching) localCandidates(ctx context.Context, req requirement.Requirement, p MatchParams) (CandidateMatchPage, error) {
	pool, err := u.cvs.ListForMatching(ctx, u.poolSize)
	if err != nil {
		return CandidateMatchPage{}, fmt.Errorf("%w: list cvs: %v", ErrInternal, err)
	}

	target := mapper.RequirementTarget(req)
	items := make([]CandidateMatchItem, 0, len(pool))
	for _, c := range pool {
		res := matching.ScoreCandidate(target, mapper.Candidate(c))
		if res.Score < p.MinScore {
			continue
		}
		items = append(items, candidateItem(c, res))
	}
	sort.SliceStable(items, func(a, b int) bool { return items[a].Score > items[b].Score })

	return CandidateMatchPage{
		Items:      paginate(items, p),
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      len(items),
		TotalPages: totalPages(len(items), p.Limit),
		Source:     metrics.SourceLocal,
	}, nil
}

func (u *Matching) ScoreJobForCV(ctx context.Context, userID, jobID, cvID uuid.UUID) (JobMatchItem, error) {
	c, err := u.ownedCV(ctx, userID, cvID)
	if err != nil {
		return JobMatchItem{}, err
	}
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return JobMatchItem{}, ErrJobNotFound
		}
		return JobMatchItem{}, fmt.Errorf("%w: get job: %v", ErrInternal, err)
	}

	return jobItem(j, matching.ScoreJob(mapper.JobTarget(j), mapper.Resume(c))), nil
}

func (u *Matching) ExportCandidateMatches(ctx context.Context, userID, reqID uuid.UUID, params MatchParams) ([]byte, error) {
	req, err := u.ownedRequirement(ctx, userID, reqID)
	if err != nil {
		return nil, err
	}
	params.Page = 1
	params.Limit = exportLimit
	page, err := u.RankCandidatesForRequirement(ctx, userID, reqID, params)
	if err != nil {
		return nil, err
	}

	rows := make([]export.CandidateRow, 0, len(page.Items))
	for i, it := range page.Items {
		rows = append(rows, export.CandidateRow{
			Rank:            i + 1,
			Fullname:        it.Fullname,
			Headline:        it.Headline,
			Location:        it.Location,
			ExperienceLevel: it.ExperienceLevel,
			Availability:    it.Availability,
			Score:           it.Score,
			MatchedSkills:   it.MatchedSkills,
			Reason:          it.Reason,
			Source:          page.Source,
		})
	}

	b, err := export.CandidatesWorkbook(export.RequirementInfo{
		Title:           req.Title,
		ExperienceLevel: req.ExperienceLevel,
		Location:        req.Location,
		Skills:          req.Skills,
		OpenPositions:   req.OpenPositions,
	}, rows, u.now())
	if err != nil {
		return nil, fmt.Errorf("%w: export: %v", ErrInternal, err)
	}
	return b, nil
}

func (u *Matching) useRemote(p MatchParams) bool {
	switch p.Mode {
	case MatchModeLocal:
		return false
	case MatchModeRemote:
		return true
	default:
		return u.remote != nil && u.remote.Enabled()
	}
}

// remoteFailure is fatal only when the caller asked for remote results explicitly.
func (u *Matching) remoteFailure(kind string, p MatchParams, err error) error {
	if p.Mode == MatchModeRemote {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	u.metrics.Fallback(kind)
	u.logger.Warn("remote matching failed, using local scorer", zap.String("kind", kind), zap.Error(err))
	return nil
}

func (u *Matching) ownedCV(ctx context.Context, userID, cvID uuid.UUID) (cv.CV, error) {
	c, err := u.cvs.GetByID(ctx, cvID)
	if err != nil {
		if errors.Is(err, repository.ErrCVNotFound) {
			return cv.CV{}, ErrCVNotFound
		}
		return cv.CV{}, fmt.Errorf("%w: get cv: %v", ErrInternal, err)
	}
	if c.CreatedBy != userID {
		return cv.CV{}, ErrForbidden
	}
	return c, nil
}

func (u *Matching) ownedRequirement(ctx context.Context, userID, reqID uuid.UUID) (requirement.Requirement, error) {
	req, err := u.requirements.GetByID(ctx, reqID)
	if err != nil {
		if errors.Is(err, repository.ErrRequirementNotFound) {
			return requirement.Requirement{}, ErrRequirementNotFound
		}
		return requirement.Requirement{}, fmt.Errorf("%w: get requirement: %v", ErrInternal, err)
	}
	if req.CreatedBy != userID {
		return requirement.Requirement{}, ErrForbidden
	}
	return req, nil
}

func (u *Matching) cacheGet(ctx context.Context, kind, key string, out any) bool {
	if u.cache == nil {
		return false
	}
	hit, err := u.cache.GetJSON(ctx, key, out)
	if err != nil {
		u.logger.Debug("match cache read failed", zap.String("key", key), zap.Error(err))
	}
	hit = hit && err == nil
	u.metrics.Cache(kind, hit)
	return hit
}

func (u *Matching) cacheSet(ctx context.Context, key string, value any) {
	if u.cache == nil {
		return
	}
	if err := u.cache.SetJSON(ctx, key, value, u.cacheTTL); err != nil {
		u.logger.Debug("match cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func jobItem(j job.Job, res matching.Result) JobMatchItem {
	b := res.Breakdown
	return JobMatchItem{
		JobID:         j.ID.String(),
		Title:         j.Title,
		CompanyName:   j.CompanyName,
		Location:      j.Location.Display(),
		Seniority:     j.Seniority,
		Skills:        j.SkillNames(),
		Score:         res.Score,
		MatchedSkills: res.MatchedSkills,
		Reason:        res.Reason,
		Breakdown:     &b,
	}
}

func candidateItem(c cv.CV, res matching.Result) CandidateMatchItem {
	b := res.Breakdown
	years := c.ExperienceCount
	if c.ExperienceYears != nil {
		years = *c.ExperienceYears
	}
	cand := mapper.Candidate(c)
	return CandidateMatchItem{
		CVID:              c.ID.String(),
		Fullname:          c.Fullname,
		Headline:          cand.Headline,
		Location:          cand.Location,
		ExperienceLevel:   cand.ExperienceLevel,
		YearsOfExperience: years,
		Availability:      c.Availability,
		Skills:            cand.Skills,
		Score:             res.Score,
		MatchedSkills:     res.MatchedSkills,
		Reason:            res.Reason,
		Breakdown:         &b,
	}
}

// matchedAgainst returns the target skills present in have, case-insensitively.
func matchedAgainst(target, have []string) []string {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[normalizeValue(h)] = struct{}{}
	}
	out := make([]string, 0)
	seen := map[string]struct{}{}
	for _, t := range target {
		n := normalizeValue(t)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		if _, ok := set[n]; ok {
			out = append(out, t)
		}
	}
	return out
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
