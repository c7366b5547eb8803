package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/delivery/http/routes"
	"talent-match/internal/domain/cv"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/requirement"
	"talent-match/internal/domain/user"
	"talent-match/internal/pkg/jwt"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobs struct {
	usecase.JobUsecase
	created job.Job
	err     error
}

func (f *fakeJobs) List(_ context.Context, p usecase.JobListParams) (usecase.JobList, error) {
	if f.err != nil {
		return usecase.JobList{}, f.err
	}
	return usecase.JobList{
		Items:    []job.Job{{ID: uuid.New(), Title: "Go Developer", Status: job.StatusPublished}},
		PageInfo: usecase.PageInfo{Page: 1, Limit: 10, Total: 1, TotalPages: 1},
	}, nil
}

func (f *fakeJobs) Create(_ context.Context, userID uuid.UUID, j job.Job) (job.Job, error) {
	if f.err != nil {
		return job.Job{}, f.err
	}
	j.ID = uuid.New()
	j.CreatedBy = userID
	f.created = j
	return j, nil
}

type fakeMatching struct {
	usecase.MatchingUsecase
	err error
}

func (f *fakeMatching) RankJobsForCV(_ context.Context, _, _ uuid.UUID, p usecase.MatchParams) (usecase.JobMatchPage, error) {
	if f.err != nil {
		return usecase.JobMatchPage{}, f.err
	}
	return usecase.JobMatchPage{
		Items:  []usecase.JobMatchItem{{JobID: "j1", Title: "Frontend Developer", Score: 95}},
		Page:   p.Page,
		Limit:  p.Limit,
		Total:  1,
		Source: "local",
	}, nil
}

func (f *fakeMatching) ExportCandidateMatches(context.Context, uuid.UUID, uuid.UUID, usecase.MatchParams) ([]byte, error) {
	return []byte("PK\x03\x04"), f.err
}

type fakeCVs struct{ usecase.CVUsecase }

func (fakeCVs) Get(context.Context, uuid.UUID, uuid.UUID) (cv.CV, error) {
	panic("boom")
}

type fakeRequirements struct{ usecase.RequirementUsecase }

func (fakeRequirements) Get(context.Context, uuid.UUID, uuid.UUID) (requirement.Requirement, error) {
	return requirement.Requirement{}, usecase.ErrRequirementNotFound
}

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("down") }

type testServer struct {
	app      *fiber.App
	jwt      *jwt.HMACService
	jobs     *fakeJobs
	matching *fakeMatching
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	jwtSvc := jwt.NewHMACService(config.JWTConfig{
		AccessSecret:  "access",
		RefreshSecret: "refresh",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	s := &testServer{
		app:      fiber.New(),
		jwt:      jwtSvc,
		jobs:     &fakeJobs{},
		matching: &fakeMatching{},
	}

	s.app.Use(middleware.NewAccessLogMiddleware(nil, nil).Middleware())
	s.app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "talent_match_up 1\n")
	})
	routes.NewRegistry(routes.Handlers{
		Health:       handler.NewHealthHandler(map[string]handler.Pinger{"postgres": downPinger{}, "redis": nil}),
		Jobs:         handler.NewJobHandler(s.jobs),
		CVs:          handler.NewCVHandler(fakeCVs{}),
		Requirements: handler.NewRequirementHandler(fakeRequirements{}),
		Match:        handler.NewMatchHandler(s.matching, 0),
	}, middleware.NewAuthMiddleware(jwtSvc).Middleware(), metrics).Register(s.app)

	return s
}

func (s *testServer) token(t *testing.T, role string) string {
	t.Helper()
	tok, err := s.jwt.GenerateAccessToken(uuid.New(), "u@example.com", role)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*http.Response, response.SemanticResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := s.app.Test(req)
	require.NoError(t, err)

	var env response.SemanticResponse
	if strings.HasPrefix(res.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	}
	return res, env
}

func TestListJobsIsPublicAndPaged(t *testing.T) {
	s := newTestServer(t)

	res, env := s.do(t, http.MethodGet, "/api/v1/jobs?page=1&limit=10", "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get(middleware.HeaderRequestID))

	data := env.Data.(map[string]any)
	assert.Len(t, data["items"], 1)
	assert.Equal(t, float64(1), data["pagination"].(map[string]any)["total"])
}

func TestListJobsRejectsNonNumericLimit(t *testing.T) {
	s := newTestServer(t)
	res, env := s.do(t, http.MethodGet, "/api/v1/jobs?limit=ten", "", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestCreateJobAuthorization(t *testing.T) {
	s := newTestServer(t)
	body := `{"title":"Backend Engineer","skills":["Go",{"name":"PostgreSQL","level":"advanced"}],"location":{"city":"Hà Nội"}}`

	res, _ := s.do(t, http.MethodPost, "/api/v1/jobs", "", body)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = s.do(t, http.MethodPost, "/api/v1/jobs", s.token(t, user.RoleCandidate), body)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, env := s.do(t, http.MethodPost, "/api/v1/jobs", s.token(t, user.RoleRecruiter), body)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "Backend Engineer", env.Data.(map[string]any)["title"])
	require.Len(t, s.jobs.created.Skills, 2)
	assert.Equal(t, "PostgreSQL", s.jobs.created.Skills[1].Name)
	assert.Equal(t, "Hà Nội", s.jobs.created.Location.City)
}

func TestCreateJobInvalidPayload(t *testing.T) {
	s := newTestServer(t)
	res, _ := s.do(t, http.MethodPost, "/api/v1/jobs", s.token(t, user.RoleRecruiter), `not json`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestRefreshTokenIsRejectedByAuth(t *testing.T) {
	s := newTestServer(t)
	refresh, err := s.jwt.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	res, _ := s.do(t, http.MethodGet, "/api/v1/cvs/"+uuid.NewString()+"/matches", refresh, "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestJobsForCV(t *testing.T) {
	s := newTestServer(t)
	path := "/api/v1/cvs/" + uuid.NewString() + "/matches?mode=local&limit=5"

	res, env := s.do(t, http.MethodGet, path, s.token(t, user.RoleCandidate), "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	data := env.Data.(map[string]any)
	assert.Equal(t, "local", data["source"])
	assert.Equal(t, float64(5), data["pagination"].(map[string]any)["limit"])

	cases := []struct {
		err  error
		want int
	}{
		{usecase.ErrForbidden, http.StatusForbidden},
		{usecase.ErrCVNotFound, http.StatusNotFound},
		{usecase.ErrInvalidMatchMode, http.StatusBadRequest},
		{usecase.ErrRemoteUnavailable, http.StatusServiceUnavailable},
		{errors.New("db exploded"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		s.matching.err = tc.err
		res, env := s.do(t, http.MethodGet, path, s.token(t, user.RoleCandidate), "")
		assert.Equal(t, tc.want, res.StatusCode, "error %v", tc.err)
		if tc.want == http.StatusInternalServerError {
			assert.Equal(t, response.MessageInternalServerError, env.Message)
		}
	}
}

func TestJobsForCVRejectsBadID(t *testing.T) {
	s := newTestServer(t)
	res, _ := s.do(t, http.MethodGet, "/api/v1/cvs/not-a-uuid/matches", s.token(t, user.RoleCandidate), "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestExportCandidates(t *testing.T) {
	s := newTestServer(t)
	path := "/api/v1/requirements/" + uuid.NewString() + "/matches/export"

	res, _ := s.do(t, http.MethodGet, path, s.token(t, user.RoleCandidate), "")
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = s.do(t, http.MethodGet, path, s.token(t, user.RoleRecruiter), "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, response.ContentTypeXLSX, res.Header.Get("Content-Type"))
	assert.Contains(t, res.Header.Get("Content-Disposition"), ".xlsx")
}

func TestRequirementNotFound(t *testing.T) {
	s := newTestServer(t)
	res, env := s.do(t, http.MethodGet, "/api/v1/requirements/"+uuid.NewString(), s.token(t, user.RoleRecruiter), "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Requirement not found", env.Message)
}

func TestPanicIsRecovered(t *testing.T) {
	s := newTestServer(t)
	res, env := s.do(t, http.MethodGet, "/api/v1/cvs/"+uuid.NewString(), s.token(t, user.RoleCandidate), "")
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, response.MessageInternalServerError, env.Message)
}

func TestHealthReportsDependencies(t *testing.T) {
	s := newTestServer(t)
	res, env := s.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	deps := env.Data.(map[string]any)["dependencies"].(map[string]any)
	assert.Equal(t, "down", deps["postgres"])
	assert.Equal(t, "disabled", deps["redis"])
}

func TestMetricsAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	res, err := s.app.Test(req)
	require.NoError(t, err)
	b, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(b), "talent_match_up")

	res, env := s.do(t, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, http.StatusNotFound, env.Status)
}
