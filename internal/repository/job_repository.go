package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"talent-match/internal/database"
	"talent-match/internal/domain/job"

	"github.com/google/uuid"
)

type JobFilter struct {
	Search    string
	Sort      string
	Status    string
	CreatedBy uuid.UUID
	Limit     int
	Offset    int
}

type JobRepository interface {
	Create(ctx context.Context, j *job.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	List(ctx context.Context, f JobFilter) ([]job.Job, int, error)
	ListForMatching(ctx context.Context, limit int) ([]job.Job, error)
	Update(ctx context.Context, j *job.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, created_by, title, company_name, location, seniority, employment_type,
	skills, tags, description, status, created_at, updated_at`

func (r *PostgresJobRepository) Create(ctx context.Context, j *job.Job) error {
	loc, skills, err := encodeJob(j)
	if err != nil {
		return err
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (created_by, title, company_name, location, seniority, employment_type, skills, tags, description, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		nullUUID(j.CreatedBy), j.Title, j.CompanyName, loc, j.Seniority, nonNil(j.EmploymentType),
		skills, nonNil(j.Tags), j.Description, j.Status,
	)
	return row.Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) List(ctx context.Context, f JobFilter) ([]job.Job, int, error) {
	limit, offset := clampPage(f.Limit, f.Offset, 10, 100)

	where := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR company_name ILIKE $%d)", len(args), len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.CreatedBy != uuid.Nil {
		args = append(args, f.CreatedBy)
		where = append(where, fmt.Sprintf("created_by = $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM jobs`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	q := fmt.Sprintf(`SELECT %s FROM jobs%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		jobColumns, clause, orderBy(f.Sort), len(args)-1, len(args))
	jobs, err := r.query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// ListForMatching returns the newest published jobs used as the local scoring pool.
func (r *PostgresJobRepository) ListForMatching(ctx context.Context, limit int) ([]job.Job, error) {
	limit, _ = clampPage(limit, 0, 500, 5000)
	return r.query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE status = $1 ORDER BY created_at DESC LIMIT $2`,
		job.StatusPublished, limit,
	)
}

func (r *PostgresJobRepository) Update(ctx context.Context, j *job.Job) error {
	loc, skills, err := encodeJob(j)
	if err != nil {
		return err
	}
	row := r.db.QueryRow(ctx,
		`UPDATE jobs SET title = $2, company_name = $3, location = $4, seniority = $5, employment_type = $6,
		 skills = $7, tags = $8, description = $9, status = $10, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		j.ID, j.Title, j.CompanyName, loc, j.Seniority, nonNil(j.EmploymentType),
		skills, nonNil(j.Tags), j.Description, j.Status,
	)
	if err := row.Scan(&j.UpdatedAt); err != nil {
		if isNoRows(err) {
			return ErrJobNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) query(ctx context.Context, q string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeJob(j *job.Job) ([]byte, []byte, error) {
	loc, err := json.Marshal(j.Location)
	if err != nil {
		return nil, nil, err
	}
	skills := j.Skills
	if skills == nil {
		skills = []job.Skill{}
	}
	sb, err := json.Marshal(skills)
	if err != nil {
		return nil, nil, err
	}
	return loc, sb, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var (
		j         job.Job
		createdBy *uuid.UUID
		loc       []byte
		skills    []byte
	)
	if err := row.Scan(&j.ID, &createdBy, &j.Title, &j.CompanyName, &loc, &j.Seniority, &j.EmploymentType,
		&skills, &j.Tags, &j.Description, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return job.Job{}, err
	}
	if createdBy != nil {
		j.CreatedBy = *createdBy
	}
	if err := decodeJSON(loc, &j.Location); err != nil {
		return job.Job{}, fmt.Errorf("decode job location: %w", err)
	}
	if err := decodeJSON(skills, &j.Skills); err != nil {
		return job.Job{}, fmt.Errorf("decode job skills: %w", err)
	}
	return j, nil
}

func decodeJSON(b []byte, out any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, out)
}

func nullUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
