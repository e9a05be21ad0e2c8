package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/labtracker-service/internal/domain"
)

// SubjectRepository encapsulates subject persistence.
type SubjectRepository interface {
	Create(ctx context.Context, subject *domain.Subject) error
	Update(ctx context.Context, subject *domain.Subject) error
	GetByID(ctx context.Context, id string) (*domain.Subject, error)
	ListByOwner(ctx context.Context, userID string) ([]domain.Subject, error)
	Delete(ctx context.Context, id string) error
}

type subjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository instantiates repository.
func NewSubjectRepository(pool *pgxpool.Pool) SubjectRepository {
	return &subjectRepository{pool: pool}
}

const subjectColumns = `id, name, course, teacher_id, user_id, tasks_count`

func (r *subjectRepository) Create(ctx context.Context, subject *domain.Subject) error {
	const query = `
        INSERT INTO subjects (name, course, teacher_id, user_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, tasks_count`

	return r.pool.QueryRow(ctx, query,
		subject.Name,
		subject.Course,
		subject.TeacherID,
		subject.UserID,
	).Scan(&subject.ID, &subject.TasksCount)
}

func (r *subjectRepository) Update(ctx context.Context, subject *domain.Subject) error {
	const query = `
        UPDATE subjects SET name=$1, course=$2, teacher_id=$3
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		subject.Name,
		subject.Course,
		subject.TeacherID,
		subject.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *subjectRepository) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	const query = `SELECT ` + subjectColumns + ` FROM subjects WHERE id=$1`

	var subject domain.Subject
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&subject.ID,
		&subject.Name,
		&subject.Course,
		&subject.TeacherID,
		&subject.UserID,
		&subject.TasksCount,
	); err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Subject, error) {
	const query = `SELECT ` + subjectColumns + ` FROM subjects WHERE user_id=$1 ORDER BY name`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Subject
	for rows.Next() {
		var subject domain.Subject
		if err := rows.Scan(
			&subject.ID,
			&subject.Name,
			&subject.Course,
			&subject.TeacherID,
			&subject.UserID,
			&subject.TasksCount,
		); err != nil {
			return nil, err
		}
		result = append(result, subject)
	}
	return result, rows.Err()
}

func (r *subjectRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
