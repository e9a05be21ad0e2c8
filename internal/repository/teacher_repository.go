package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/labtracker-service/internal/domain"
)

// TeacherRepository encapsulates teacher persistence.
type TeacherRepository interface {
	Create(ctx context.Context, teacher *domain.Teacher) error
	GetByID(ctx context.Context, id string) (*domain.Teacher, error)
	ListByOwner(ctx context.Context, userID string) ([]domain.Teacher, error)
	Delete(ctx context.Context, id string) error
}

type teacherRepository struct {
	pool *pgxpool.Pool
}

// NewTeacherRepository instantiates repository.
func NewTeacherRepository(pool *pgxpool.Pool) TeacherRepository {
	return &teacherRepository{pool: pool}
}

func (r *teacherRepository) Create(ctx context.Context, teacher *domain.Teacher) error {
	const query = `
        INSERT INTO teachers (name, surname, father_name, phone_number, user_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		teacher.Name,
		teacher.Surname,
		teacher.FatherName,
		teacher.PhoneNumber,
		teacher.UserID,
	).Scan(&teacher.ID)
}

func (r *teacherRepository) GetByID(ctx context.Context, id string) (*domain.Teacher, error) {
	const query = `
        SELECT id, name, surname, father_name, phone_number, user_id
        FROM teachers WHERE id=$1`

	var teacher domain.Teacher
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&teacher.ID,
		&teacher.Name,
		&teacher.Surname,
		&teacher.FatherName,
		&teacher.PhoneNumber,
		&teacher.UserID,
	); err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Teacher, error) {
	const query = `
        SELECT id, name, surname, father_name, phone_number, user_id
        FROM teachers WHERE user_id=$1
        ORDER BY surname, name`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Teacher
	for rows.Next() {
		var teacher domain.Teacher
		if err := rows.Scan(
			&teacher.ID,
			&teacher.Name,
			&teacher.Surname,
			&teacher.FatherName,
			&teacher.PhoneNumber,
			&teacher.UserID,
		); err != nil {
			return nil, err
		}
		result = append(result, teacher)
	}
	return result, rows.Err()
}

func (r *teacherRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM teachers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
