package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"talent-match/internal/domain/cv"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/requirement"
	"talent-match/internal/domain/user"
	"talent-match/internal/infrastructure/rag"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type memJobs struct {
	items    map[uuid.UUID]job.Job
	pool     []job.Job
	listErr  error
	lastList repository.JobFilter
	pooled   int
}

func newMemJobs(pool ...job.Job) *memJobs {
	m := &memJobs{items: map[uuid.UUID]job.Job{}, pool: pool}
	for _, j := range pool {
		m.items[j.ID] = j
	}
	return m
}

func (m *memJobs) Create(_ context.Context, j *job.Job) error {
	j.ID = uuid.New()
	j.CreatedAt = time.Now()
	j.UpdatedAt = j.CreatedAt
	m.items[j.ID] = *j
	return nil
}

func (m *memJobs) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := m.items[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (m *memJobs) List(_ context.Context, f repository.JobFilter) ([]job.Job, int, error) {
	m.lastList = f
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	out := make([]job.Job, 0, len(m.items))
	for _, j := range m.items {
		out = append(out, j)
	}
	return out, len(out), nil
}

func (m *memJobs) ListForMatching(_ context.Context, limit int) ([]job.Job, error) {
	m.pooled++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.pool, nil
}

func (m *memJobs) Update(_ context.Context, j *job.Job) error {
	if _, ok := m.items[j.ID]; !ok {
		return repository.ErrJobNotFound
	}
	j.UpdatedAt = time.Now()
	m.items[j.ID] = *j
	return nil
}

func (m *memJobs) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrJobNotFound
	}
	delete(m.items, id)
	return nil
}

type memCVs struct {
	items  map[uuid.UUID]cv.CV
	pool   []cv.CV
	pooled int
}

func newMemCVs(pool ...cv.CV) *memCVs {
	m := &memCVs{items: map[uuid.UUID]cv.CV{}, pool: pool}
	for _, c := range pool {
		m.items[c.ID] = c
	}
	return m
}

func (m *memCVs) put(c cv.CV) { m.items[c.ID] = c }

func (m *memCVs) Create(_ context.Context, c *cv.CV) error {
	c.ID = uuid.New()
	m.items[c.ID] = *c
	return nil
}

func (m *memCVs) GetByID(_ context.Context, id uuid.UUID) (cv.CV, error) {
	c, ok := m.items[id]
	if !ok {
		return cv.CV{}, repository.ErrCVNotFound
	}
	return c, nil
}

func (m *memCVs) ListByOwner(_ context.Context, owner uuid.UUID, limit, offset int) ([]cv.CV, int, error) {
	out := make([]cv.CV, 0)
	for _, c := range m.items {
		if c.CreatedBy == owner {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (m *memCVs) ListForMatching(_ context.Context, limit int) ([]cv.CV, error) {
	m.pooled++
	return m.pool, nil
}

func (m *memCVs) Update(_ context.Context, c *cv.CV) error {
	if _, ok := m.items[c.ID]; !ok {
		return repository.ErrCVNotFound
	}
	m.items[c.ID] = *c
	return nil
}

func (m *memCVs) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrCVNotFound
	}
	delete(m.items, id)
	return nil
}

type memRequirements struct {
	items map[uuid.UUID]requirement.Requirement
}

func newMemRequirements(reqs ...requirement.Requirement) *memRequirements {
	m := &memRequirements{items: map[uuid.UUID]requirement.Requirement{}}
	for _, r := range reqs {
		m.items[r.ID] = r
	}
	return m
}

func (m *memRequirements) Create(_ context.Context, r *requirement.Requirement) error {
	r.ID = uuid.New()
	m.items[r.ID] = *r
	return nil
}

func (m *memRequirements) GetByID(_ context.Context, id uuid.UUID) (requirement.Requirement, error) {
	r, ok := m.items[id]
	if !ok {
		return requirement.Requirement{}, repository.ErrRequirementNotFound
	}
	return r, nil
}

func (m *memRequirements) ListByOwner(_ context.Context, owner uuid.UUID, limit, offset int) ([]requirement.Requirement, int, error) {
	out := make([]requirement.Requirement, 0)
	for _, r := range m.items {
		if r.CreatedBy == owner {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (m *memRequirements) Update(_ context.Context, r *requirement.Requirement) error {
	if _, ok := m.items[r.ID]; !ok {
		return repository.ErrRequirementNotFound
	}
	m.items[r.ID] = *r
	return nil
}

func (m *memRequirements) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrRequirementNotFound
	}
	delete(m.items, id)
	return nil
}

type stubRemote struct {
	enabled    bool
	err        error
	jobs       rag.Page[rag.JobMatch]
	candidates rag.Page[rag.CandidateMatch]
	calls      int
}

func (s *stubRemote) Enabled() bool { return s.enabled }

func (s *stubRemote) MatchJobsForCV(context.Context, string, rag.Query) (rag.Page[rag.JobMatch], error) {
	s.calls++
	return s.jobs, s.err
}

func (s *stubRemote) MatchCVsForRequirement(context.Context, string, rag.Query) (rag.Page[rag.CandidateMatch], error) {
	s.calls++
	return s.candidates, s.err
}

// memCache stores JSON like the redis cache so cached pages round-trip through encoding.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = b
	c.mu.Unlock()
	return nil
}

type countingMetrics struct {
	rankings  map[string]int
	fallbacks int
	hits      int
	misses    int
}

func newCountingMetrics() *countingMetrics { return &countingMetrics{rankings: map[string]int{}} }

func (m *countingMetrics) ObserveRanking(kind, source string, _ time.Duration) {
	m.rankings[kind+"/"+source]++
}
func (m *countingMetrics) Fallback(string) { m.fallbacks++ }
func (m *countingMetrics) Cache(_ string, hit bool) {
	if hit {
		m.hits++
		return
	}
	m.misses++
}

type recordedEvent struct {
	Type   string
	Action string
	ID     uuid.UUID
}

type recordingNotifier struct{ events []recordedEvent }

func (n *recordingNotifier) Notify(eventType, action string, id uuid.UUID) {
	n.events = append(n.events, recordedEvent{eventType, action, id})
}

type recordingInvalidator struct {
	jobs         int
	cvs          []uuid.UUID
	requirements []uuid.UUID
	err          error
}

func (r *recordingInvalidator) InvalidateJobsChanged(context.Context) error {
	r.jobs++
	return r.err
}

func (r *recordingInvalidator) InvalidateCVChanged(_ context.Context, id uuid.UUID) error {
	r.cvs = append(r.cvs, id)
	return r.err
}

func (r *recordingInvalidator) InvalidateRequirementChanged(_ context.Context, id uuid.UUID) error {
	r.requirements = append(r.requirements, id)
	return r.err
}

type memUsers struct {
	byID map[uuid.UUID]user.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[uuid.UUID]user.User{}} }

func (m *memUsers) CreateUser(_ context.Context, u user.User) error {
	for _, e := range m.byID {
		if e.Email == u.Email {
			return errors.New("duplicate")
		}
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetUserByEmail(ctx, email)
	return err == nil, nil
}
