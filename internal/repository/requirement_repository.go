package repository

import (
	"context"

	"talent-match/internal/database"
	"talent-match/internal/domain/requirement"

	"github.com/google/uuid"
)

type RequirementRepository interface {
	Create(ctx context.Context, req *requirement.Requirement) error
	GetByID(ctx context.Context, id uuid.UUID) (requirement.Requirement, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]requirement.Requirement, int, error)
	Update(ctx context.Context, req *requirement.Requirement) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresRequirementRepository struct {
	db database.DB
}

func NewPostgresRequirementRepository(db database.DB) *PostgresRequirementRepository {
	return &PostgresRequirementRepository{db: db}
}

const requirementColumns = `id, created_by, title, skills, experience_level, location, open_positions,
	criteria, created_at, updated_at`

func (r *PostgresRequirementRepository) Create(ctx context.Context, req *requirement.Requirement) error {
	row := r.db.QueryRow(ctx,
		`INSERT INTO requirements (created_by, title, skills, experience_level, location, open_positions, criteria)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		req.CreatedBy, req.Title, nonNil(req.Skills), req.ExperienceLevel, req.Location, req.OpenPositions,
		nonNil(req.Criteria),
	)
	return row.Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *PostgresRequirementRepository) GetByID(ctx context.Context, id uuid.UUID) (requirement.Requirement, error) {
	req, err := scanRequirement(r.db.QueryRow(ctx, `SELECT `+requirementColumns+` FROM requirements WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return requirement.Requirement{}, ErrRequirementNotFound
		}
		return requirement.Requirement{}, err
	}
	return req, nil
}

func (r *PostgresRequirementRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]requirement.Requirement, int, error) {
	limit, offset = clampPage(limit, offset, 10, 100)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM requirements WHERE created_by = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+requirementColumns+` FROM requirements WHERE created_by = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]requirement.Requirement, 0)
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresRequirementRepository) Update(ctx context.Context, req *requirement.Requirement) error {
	row := r.db.QueryRow(ctx,
		`UPDATE requirements SET title = $2, skills = $3, experience_level = $4, location = $5,
		 open_positions = $6, criteria = $7, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		req.ID, req.Title, nonNil(req.Skills), req.ExperienceLevel, req.Location, req.OpenPositions, nonNil(req.Criteria),
	)
	if err := row.Scan(&req.UpdatedAt); err != nil {
		if isNoRows(err) {
			return ErrRequirementNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRequirementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM requirements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRequirementNotFound
	}
	return nil
}

func scanRequirement(row database.Row) (requirement.Requirement, error) {
	var req requirement.Requirement
	err := row.Scan(&req.ID, &req.CreatedBy, &req.Title, &req.Skills, &req.ExperienceLevel, &req.Location,
		&req.OpenPositions, &req.Criteria, &req.CreatedAt, &req.UpdatedAt)
	return req, err
}
