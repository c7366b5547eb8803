package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"talent-match/internal/domain/requirement"
	"talent-match/internal/repository"
	"talent-match/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RequirementList struct {
	Items []requirement.Requirement
	PageInfo
}

type RequirementUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, r requirement.Requirement) (requirement.Requirement, error)
	Get(ctx context.Context, userID, id uuid.UUID) (requirement.Requirement, error)
	ListMine(ctx context.Context, userID uuid.UUID, params ListParams) (RequirementList, error)
	Update(ctx context.Context, userID, id uuid.UUID, r requirement.Requirement) (requirement.Requirement, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type Requirements struct {
	repo  repository.RequirementRepository
	hooks changeHooks
}

func NewRequirementUsecase(repo repository.RequirementRepository, cache MatchInvalidator, notifier ChangeNotifier, logger *zap.Logger) *Requirements {
	return &Requirements{repo: repo, hooks: newChangeHooks(cache, notifier, logger)}
}

func (u *Requirements) Create(ctx context.Context, userID uuid.UUID, r requirement.Requirement) (requirement.Requirement, error) {
	r, err := sanitizeRequirement(r)
	if err != nil {
		return requirement.Requirement{}, err
	}
	r.CreatedBy = userID
	if err := u.repo.Create(ctx, &r); err != nil {
		return requirement.Requirement{}, fmt.Errorf("%w: create requirement: %v", ErrInternal, err)
	}
	u.changed(ctx, actionCreated, r.ID)
	return r, nil
}

func (u *Requirements) Get(ctx context.Context, userID, id uuid.UUID) (requirement.Requirement, error) {
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRequirementNotFound) {
			return requirement.Requirement{}, ErrRequirementNotFound
		}
		return requirement.Requirement{}, fmt.Errorf("%w: get requirement: %v", ErrInternal, err)
	}
	if r.CreatedBy != userID {
		return requirement.Requirement{}, ErrForbidden
	}
	return r, nil
}

func (u *Requirements) ListMine(ctx context.Context, userID uuid.UUID, params ListParams) (RequirementList, error) {
	p, err := params.normalize()
	if err != nil {
		return RequirementList{}, err
	}
	items, total, err := u.repo.ListByOwner(ctx, userID, p.Limit, p.offset())
	if err != nil {
		return RequirementList{}, fmt.Errorf("%w: list requirements: %v", ErrInternal, err)
	}
	return RequirementList{Items: items, PageInfo: pageInfo(p, total)}, nil
}

func (u *Requirements) Update(ctx context.Context, userID, id uuid.UUID, r requirement.Requirement) (requirement.Requirement, error) {
	cur, err := u.Get(ctx, userID, id)
	if err != nil {
		return requirement.Requirement{}, err
	}
	r, err = sanitizeRequirement(r)
	if err != nil {
		return requirement.Requirement{}, err
	}
	r.ID = cur.ID
	r.CreatedBy = cur.CreatedBy
	r.CreatedAt = cur.CreatedAt
	if err := u.repo.Update(ctx, &r); err != nil {
		if errors.Is(err, repository.ErrRequirementNotFound) {
			return requirement.Requirement{}, ErrRequirementNotFound
		}
		return requirement.Requirement{}, fmt.Errorf("%w: update requirement: %v", ErrInternal, err)
	}
	u.changed(ctx, actionUpdated, r.ID)
	return r, nil
}

func (u *Requirements) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := u.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRequirementNotFound) {
			return ErrRequirementNotFound
		}
		return fmt.Errorf("%w: delete requirement: %v", ErrInternal, err)
	}
	u.changed(ctx, actionDeleted, id)
	return nil
}

func (u *Requirements) changed(ctx context.Context, action string, id uuid.UUID) {
	if u.hooks.cache != nil {
		u.hooks.invalidate("requirement", u.hooks.cache.InvalidateRequirementChanged(ctx, id))
	}
	u.hooks.notify(ws.EventRequirementsUpdated, action, id)
}

func sanitizeRequirement(r requirement.Requirement) (requirement.Requirement, error) {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return requirement.Requirement{}, ErrInvalidInput
	}
	if r.OpenPositions < 0 {
		return requirement.Requirement{}, ErrInvalidInput
	}
	if r.OpenPositions == 0 {
		r.OpenPositions = 1
	}
	r.ExperienceLevel = strings.TrimSpace(r.ExperienceLevel)
	r.Location = strings.TrimSpace(r.Location)
	r.Skills = trimAll(r.Skills)
	r.Criteria = trimAll(r.Criteria)
	return r, nil
}
