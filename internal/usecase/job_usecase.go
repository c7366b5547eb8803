package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"talent-match/internal/domain/job"
	"talent-match/internal/repository"
	"talent-match/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type JobListParams struct {
	ListParams
	Status    string
	CreatedBy uuid.UUID
}

type JobList struct {
	Items []job.Job
	PageInfo
}

type JobUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, j job.Job) (job.Job, error)
	Get(ctx context.Context, id uuid.UUID) (job.Job, error)
	List(ctx context.Context, params JobListParams) (JobList, error)
	Update(ctx context.Context, userID, id uuid.UUID, j job.Job) (job.Job, error)
	Rename(ctx context.Context, userID, id uuid.UUID, title string) (job.Job, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type Jobs struct {
	repo  repository.JobRepository
	hooks changeHooks
}

func NewJobUsecase(repo repository.JobRepository, cache MatchInvalidator, notifier ChangeNotifier, logger *zap.Logger) *Jobs {
	return &Jobs{repo: repo, hooks: newChangeHooks(cache, notifier, logger)}
}

func (u *Jobs) Create(ctx context.Context, userID uuid.UUID, j job.Job) (job.Job, error) {
	j, err := sanitizeJob(j)
	if err != nil {
		return job.Job{}, err
	}
	j.CreatedBy = userID
	if err := u.repo.Create(ctx, &j); err != nil {
		return job.Job{}, fmt.Errorf("%w: create job: %v", ErrInternal, err)
	}
	u.changed(ctx, actionCreated, j.ID)
	return j, nil
}

func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("%w: get job: %v", ErrInternal, err)
	}
	return j, nil
}

func (u *Jobs) List(ctx context.Context, params JobListParams) (JobList, error) {
	p, err := params.ListParams.normalize()
	if err != nil {
		return JobList{}, err
	}
	status := strings.ToLower(strings.TrimSpace(params.Status))
	if status != "" && !job.IsValidStatus(status) {
		return JobList{}, ErrInvalidInput
	}

	items, total, err := u.repo.List(ctx, repository.JobFilter{
		Search:    p.Search,
		Sort:      p.Sort,
		Status:    status,
		CreatedBy: params.CreatedBy,
		Limit:     p.Limit,
		Offset:    p.offset(),
	})
	if err != nil {
		return JobList{}, fmt.Errorf("%w: list jobs: %v", ErrInternal, err)
	}
	return JobList{Items: items, PageInfo: pageInfo(p, total)}, nil
}

func (u *Jobs) Update(ctx context.Context, userID, id uuid.UUID, j job.Job) (job.Job, error) {
	cur, err := u.owned(ctx, userID, id)
	if err != nil {
		return job.Job{}, err
	}
	j, err = sanitizeJob(j)
	if err != nil {
		return job.Job{}, err
	}
	j.ID = cur.ID
	j.CreatedBy = cur.CreatedBy
	j.CreatedAt = cur.CreatedAt
	return u.save(ctx, j)
}

func (u *Jobs) Rename(ctx context.Context, userID, id uuid.UUID, title string) (job.Job, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return job.Job{}, ErrInvalidInput
	}
	cur, err := u.owned(ctx, userID, id)
	if err != nil {
		return job.Job{}, err
	}
	cur.Title = title
	return u.save(ctx, cur)
}

func (u *Jobs) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := u.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("%w: delete job: %v", ErrInternal, err)
	}
	u.changed(ctx, actionDeleted, id)
	return nil
}

func (u *Jobs) save(ctx context.Context, j job.Job) (job.Job, error) {
	if err := u.repo.Update(ctx, &j); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("%w: update job: %v", ErrInternal, err)
	}
	u.changed(ctx, actionUpdated, j.ID)
	return j, nil
}

func (u *Jobs) owned(ctx context.Context, userID, id uuid.UUID) (job.Job, error) {
	j, err := u.Get(ctx, id)
	if err != nil {
		return job.Job{}, err
	}
	if j.CreatedBy != userID {
		return job.Job{}, ErrForbidden
	}
	return j, nil
}

func (u *Jobs) changed(ctx context.Context, action string, id uuid.UUID) {
	if u.hooks.cache != nil {
		u.hooks.invalidate("job", u.hooks.cache.InvalidateJobsChanged(ctx))
	}
	u.hooks.notify(ws.EventJobsUpdated, action, id)
}

func sanitizeJob(j job.Job) (job.Job, error) {
	j.Title = strings.TrimSpace(j.Title)
	if j.Title == "" {
		return job.Job{}, ErrInvalidInput
	}
	j.CompanyName = strings.TrimSpace(j.CompanyName)
	j.Seniority = strings.TrimSpace(j.Seniority)
	j.Description = strings.TrimSpace(j.Description)
	j.Tags = trimAll(j.Tags)
	j.EmploymentType = trimAll(j.EmploymentType)

	skills := make([]job.Skill, 0, len(j.Skills))
	for _, s := range j.Skills {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name != "" {
			skills = append(skills, s)
		}
	}
	j.Skills = skills

	j.Status = strings.ToLower(strings.TrimSpace(j.Status))
	if j.Status == "" {
		j.Status = job.StatusPublished
	}
	if !job.IsValidStatus(j.Status) {
		return job.Job{}, ErrInvalidInput
	}
	return j, nil
}
