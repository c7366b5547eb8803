package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"talent-match/internal/domain/cv"
	"talent-match/internal/repository"
	"talent-match/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CVList struct {
	Items []cv.CV
	PageInfo
}

type CVUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, c cv.CV) (cv.CV, error)
	Get(ctx context.Context, userID, id uuid.UUID) (cv.CV, error)
	ListMine(ctx context.Context, userID uuid.UUID, params ListParams) (CVList, error)
	Update(ctx context.Context, userID, id uuid.UUID, c cv.CV) (cv.CV, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type CVs struct {
	repo  repository.CVRepository
	hooks changeHooks
}

func NewCVUsecase(repo repository.CVRepository, cache MatchInvalidator, notifier ChangeNotifier, logger *zap.Logger) *CVs {
	return &CVs{repo: repo, hooks: newChangeHooks(cache, notifier, logger)}
}

func (u *CVs) Create(ctx context.Context, userID uuid.UUID, c cv.CV) (cv.CV, error) {
	c, err := sanitizeCV(c)
	if err != nil {
		return cv.CV{}, err
	}
	c.CreatedBy = userID
	if err := u.repo.Create(ctx, &c); err != nil {
		return cv.CV{}, fmt.Errorf("%w: create cv: %v", ErrInternal, err)
	}
	u.changed(ctx, actionCreated, c.ID)
	return c, nil
}

// Get returns a CV visible only to its owner.
func (u *CVs) Get(ctx context.Context, userID, id uuid.UUID) (cv.CV, error) {
	c, err := u.repo.GetByID(ctx, id)
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

func (u *CVs) ListMine(ctx context.Context, userID uuid.UUID, params ListParams) (CVList, error) {
	p, err := params.normalize()
	if err != nil {
		return CVList{}, err
	}
	items, total, err := u.repo.ListByOwner(ctx, userID, p.Limit, p.offset())
	if err != nil {
		return CVList{}, fmt.Errorf("%w: list cvs: %v", ErrInternal, err)
	}
	return CVList{Items: items, PageInfo: pageInfo(p, total)}, nil
}

func (u *CVs) Update(ctx context.Context, userID, id uuid.UUID, c cv.CV) (cv.CV, error) {
	cur, err := u.Get(ctx, userID, id)
	if err != nil {
		return cv.CV{}, err
	}
	c, err = sanitizeCV(c)
	if err != nil {
		return cv.CV{}, err
	}
	c.ID = cur.ID
	c.CreatedBy = cur.CreatedBy
	c.CreatedAt = cur.CreatedAt
	if err := u.repo.Update(ctx, &c); err != nil {
		if errors.Is(err, repository.ErrCVNotFound) {
			return cv.CV{}, ErrCVNotFound
		}
		return cv.CV{}, fmt.Errorf("%w: update cv: %v", ErrInternal, err)
	}
	u.changed(ctx, actionUpdated, c.ID)
	return c, nil
}

func (u *CVs) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := u.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCVNotFound) {
			return ErrCVNotFound
		}
		return fmt.Errorf("%w: delete cv: %v", ErrInternal, err)
	}
	u.changed(ctx, actionDeleted, id)
	return nil
}

func (u *CVs) changed(ctx context.Context, action string, id uuid.UUID) {
	if u.hooks.cache != nil {
		u.hooks.invalidate("cv", u.hooks.cache.InvalidateCVChanged(ctx, id))
	}
	u.hooks.notify(ws.EventCVsUpdated, action, id)
}

func sanitizeCV(c cv.CV) (cv.CV, error) {
	c.Fullname = strings.TrimSpace(c.Fullname)
	if c.Fullname == "" {
		return cv.CV{}, ErrInvalidInput
	}
	if c.ExperienceYears != nil && *c.ExperienceYears < 0 {
		return cv.CV{}, ErrInvalidInput
	}
	if c.ExperienceCount < 0 {
		return cv.CV{}, ErrInvalidInput
	}
	c.Headline = strings.TrimSpace(c.Headline)
	c.TargetRole = strings.TrimSpace(c.TargetRole)
	c.Summary = strings.TrimSpace(c.Summary)
	c.ExperienceLevel = strings.TrimSpace(c.ExperienceLevel)
	c.Availability = strings.TrimSpace(c.Availability)
	c.EmploymentType = trimAll(c.EmploymentType)

	skills := make([]cv.Skill, 0, len(c.Skills))
	for _, s := range c.Skills {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name != "" {
			skills = append(skills, s)
		}
	}
	c.Skills = skills
	return c, nil
}
