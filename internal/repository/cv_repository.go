package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"talent-match/internal/database"
	"talent-match/internal/domain/cv"

	"github.com/google/uuid"
)

type CVRepository interface {
	Create(ctx context.Context, c *cv.CV) error
	GetByID(ctx context.Context, id uuid.UUID) (cv.CV, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]cv.CV, int, error)
	ListForMatching(ctx context.Context, limit int) ([]cv.CV, error)
	Update(ctx context.Context, c *cv.CV) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresCVRepository struct {
	db database.DB
}

func NewPostgresCVRepository(db database.DB) *PostgresCVRepository {
	return &PostgresCVRepository{db: db}
}

const cvColumns = `id, created_by, fullname, headline, target_role, summary, location, skills,
	experience_level, experience_years, experience_count, employment_type, availability, created_at, updated_at`

func (r *PostgresCVRepository) Create(ctx context.Context, c *cv.CV) error {
	loc, skills, err := encodeCV(c)
	if err != nil {
		return err
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO cvs (created_by, fullname, headline, target_role, summary, location, skills,
		 experience_level, experience_years, experience_count, employment_type, availability)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		c.CreatedBy, c.Fullname, c.Headline, c.TargetRole, c.Summary, loc, skills,
		c.ExperienceLevel, c.ExperienceYears, c.ExperienceCount, nonNil(c.EmploymentType), c.Availability,
	)
	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *PostgresCVRepository) GetByID(ctx context.Context, id uuid.UUID) (cv.CV, error) {
	c, err := scanCV(r.db.QueryRow(ctx, `SELECT `+cvColumns+` FROM cvs WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return cv.CV{}, ErrCVNotFound
		}
		return cv.CV{}, err
	}
	return c, nil
}

func (r *PostgresCVRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]cv.CV, int, error) {
	limit, offset = clampPage(limit, offset, 10, 100)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM cvs WHERE created_by = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	out, err := r.query(ctx,
		`SELECT `+cvColumns+` FROM cvs WHERE created_by = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresCVRepository) ListForMatching(ctx context.Context, limit int) ([]cv.CV, error) {
	limit, _ = clampPage(limit, 0, 500, 5000)
	return r.query(ctx, `SELECT `+cvColumns+` FROM cvs ORDER BY updated_at DESC LIMIT $1`, limit)
}

func (r *PostgresCVRepository) Update(ctx context.Context, c *cv.CV) error {
	loc, skills, err := encodeCV(c)
	if err != nil {
		return err
	}
	row := r.db.QueryRow(ctx,
		`UPDATE cvs SET fullname = $2, headline = $3, target_role = $4, summary = $5, location = $6, skills = $7,
		 experience_level = $8, experience_years = $9, experience_count = $10, employment_type = $11,
		 availability = $12, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		c.ID, c.Fullname, c.Headline, c.TargetRole, c.Summary, loc, skills,
		c.ExperienceLevel, c.ExperienceYears, c.ExperienceCount, nonNil(c.EmploymentType), c.Availability,
	)
	if err := row.Scan(&c.UpdatedAt); err != nil {
		if isNoRows(err) {
			return ErrCVNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresCVRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM cvs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCVNotFound
	}
	return nil
}

func (r *PostgresCVRepository) query(ctx context.Context, q string, args ...any) ([]cv.CV, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cv.CV, 0)
	for rows.Next() {
		c, err := scanCV(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeCV(c *cv.CV) ([]byte, []byte, error) {
	loc, err := json.Marshal(c.Location)
	if err != nil {
		return nil, nil, err
	}
	skills := c.Skills
	if skills == nil {
		skills = []cv.Skill{}
	}
	sb, err := json.Marshal(skills)
	if err != nil {
		return nil, nil, err
	}
	return loc, sb, nil
}

func scanCV(row database.Row) (cv.CV, error) {
	var (
		c      cv.CV
		loc    []byte
		skills []byte
	)
	if err := row.Scan(&c.ID, &c.CreatedBy, &c.Fullname, &c.Headline, &c.TargetRole, &c.Summary, &loc, &skills,
		&c.ExperienceLevel, &c.ExperienceYears, &c.ExperienceCount, &c.EmploymentType, &c.Availability,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return cv.CV{}, err
	}
	if err := decodeJSON(loc, &c.Location); err != nil {
		return cv.CV{}, fmt.Errorf("decode cv location: %w", err)
	}
	if err := decodeJSON(skills, &c.Skills); err != nil {
		return cv.CV{}, fmt.Errorf("decode cv skills: %w", err)
	}
	return c, nil
}
