package branch

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/branchmaster/BM-BookingService/internal/domain"
	"github.com/branchmaster/BM-BookingService/pkg/dbmetrics"
	"github.com/branchmaster/BM-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с филиалами и их часами работы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория филиалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает филиал по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"timeslot_length",
		"active",
		"address",
		"city",
		"created_at",
	).
		From("branch").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var branch domain.Branch
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&branch.ID,
		&branch.Name,
		&branch.TimeslotLength,
		&branch.Active,
		&branch.Address,
		&branch.City,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBranchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan branch: %v", ErrScanRow, err)
	}

	branch.CreatedAt = createdAt.Time

	return &branch, nil
}

// GetAllActive получает все активные филиалы, отсортированные по названию
func (r *Repository) GetAllActive(ctx context.Context) ([]*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"timeslot_length",
		"active",
		"address",
		"city",
		"created_at",
	).
		From("branch").
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	branches := make([]*domain.Branch, 0)
	for rows.Next() {
		var branch domain.Branch
		var createdAt sql.NullTime

		err := rows.Scan(
			&branch.ID,
			&branch.Name,
			&branch.TimeslotLength,
			&branch.Active,
			&branch.Address,
			&branch.City,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllActive - scan row: %v", ErrScanRow, err)
		}

		branch.CreatedAt = createdAt.Time
		branches = append(branches, &branch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllActive - rows error: %v", ErrScanRow, err)
	}

	return branches, nil
}

// GetOpenOperatingHours получает часы работы филиала на неделю (только открытые дни)
func (r *Repository) GetOpenOperatingHours(ctx context.Context, branchID int64) ([]*domain.OperatingHours, error) {
	return r.queryOperatingHours(ctx, squirrel.And{
		squirrel.Eq{"branch_id": branchID},
		squirrel.Eq{"closed": false},
	})
}

// GetOperatingHours получает все записи часов работы филиала, включая закрытые дни
func (r *Repository) GetOperatingHours(ctx context.Context, branchID int64) ([]*domain.OperatingHours, error) {
	return r.queryOperatingHours(ctx, squirrel.Eq{"branch_id": branchID})
}

// GetOperatingHoursByID получает запись часов работы по ID
func (r *Repository) GetOperatingHoursByID(ctx context.Context, id int64) (*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"branch_id",
		"day_of_week",
		"opening_time",
		"closing_time",
		"closed",
	).
		From("branch_operating_hours").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHoursByID - build select query: %v", ErrBuildQuery, err)
	}

	var oh domain.OperatingHours
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&oh.ID,
		&oh.BranchID,
		&oh.DayOfWeek,
		&oh.OpeningTime,
		&oh.ClosingTime,
		&oh.Closed,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOperatingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHoursByID - scan row: %v", ErrScanRow, err)
	}

	return &oh, nil
}

// UpdateOperatingHours обновляет запись часов работы
func (r *Repository) UpdateOperatingHours(ctx context.Context, oh *domain.OperatingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("branch_operating_hours").
		Set("day_of_week", oh.DayOfWeek).
		Set("opening_time", oh.OpeningTime).
		Set("closing_time", oh.ClosingTime).
		Set("closed", oh.Closed).
		Where(squirrel.Eq{"id": oh.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateOperatingHours - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateOperatingHours - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateOperatingHours - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOperatingHoursNotFound
	}

	return nil
}

func (r *Repository) queryOperatingHours(ctx context.Context, where squirrel.Sqlizer) ([]*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"branch_id",
		"day_of_week",
		"opening_time",
		"closing_time",
		"closed",
	).
		From("branch_operating_hours").
		Where(where).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: queryOperatingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: queryOperatingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]*domain.OperatingHours, 0)
	for rows.Next() {
		var oh domain.OperatingHours

		err := rows.Scan(
			&oh.ID,
			&oh.BranchID,
			&oh.DayOfWeek,
			&oh.OpeningTime,
			&oh.ClosingTime,
			&oh.Closed,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: queryOperatingHours - scan row: %v", ErrScanRow, err)
		}

		hours = append(hours, &oh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: queryOperatingHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}
