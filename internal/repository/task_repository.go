package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/labtracker-service/internal/domain"
)

// TaskFilter captures task listing parameters.
type TaskFilter struct {
	UserID       *string
	SubjectID    *string
	Types        []domain.TaskType
	Priorities   []domain.TaskPriority
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time
	Limit        int
	Offset       int
}

// TaskRepository encapsulates task persistence. Create and Delete keep the
// owning subject's tasks_count in step within a single transaction.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByOwner(ctx context.Context, userID string, limit, offset int) ([]domain.Task, error)
	ListWithFilter(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository instantiates repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, name, description, deadline, type, priority, subject_id, user_id`

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO tasks (name, description, deadline, type, priority, subject_id, user_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id`
	if err := tx.QueryRow(ctx, query,
		task.Name,
		task.Description,
		task.Deadline,
		task.Type,
		task.Priority,
		task.SubjectID,
		task.UserID,
	).Scan(&task.ID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE subjects SET tasks_count = tasks_count + 1 WHERE id=$1`, task.SubjectID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE tasks SET name=$1, description=$2, deadline=$3, type=$4, priority=$5
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		task.Name,
		task.Description,
		task.Deadline,
		task.Type,
		task.Priority,
		task.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM tasks WHERE id=$1`

	var task domain.Task
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.Name,
		&task.Description,
		&task.Deadline,
		&task.Type,
		&task.Priority,
		&task.SubjectID,
		&task.UserID,
	); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByOwner(ctx context.Context, userID string, limit, offset int) ([]domain.Task, error) {
	filter := TaskFilter{
		UserID: &userID,
		Limit:  limit,
		Offset: offset,
	}
	return r.ListWithFilter(ctx, filter)
}

func (r *taskRepository) ListWithFilter(ctx context.Context, filter TaskFilter) ([]domain.Task, error) {
	base := `SELECT ` + taskColumns + ` FROM tasks`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.SubjectID != nil {
		args = append(args, *filter.SubjectID)
		clauses = append(clauses, fmt.Sprintf("subject_id=$%d", len(args)))
	}
	if len(filter.Types) > 0 {
		placeholders := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			args = append(args, t)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("type IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, p := range filter.Priorities {
			args = append(args, p)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.DeadlineFrom != nil {
		args = append(args, *filter.DeadlineFrom)
		clauses = append(clauses, fmt.Sprintf("deadline >= $%d", len(args)))
	}
	if filter.DeadlineTo != nil {
		args = append(args, *filter.DeadlineTo)
		clauses = append(clauses, fmt.Sprintf("deadline <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY deadline ASC NULLS LAST, name LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var subjectID string
	if err := tx.QueryRow(ctx,
		`DELETE FROM tasks WHERE id=$1 RETURNING subject_id`, id).Scan(&subjectID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE subjects SET tasks_count = tasks_count - 1 WHERE id=$1`, subjectID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanTasks(rows pgx.Rows) ([]domain.Task, error) {
	var result []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Name,
			&task.Description,
			&task.Deadline,
			&task.Type,
			&task.Priority,
			&task.SubjectID,
			&task.UserID,
		); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	return result, rows.Err()
}
