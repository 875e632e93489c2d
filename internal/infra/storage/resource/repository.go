package resource

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/branchmaster/BM-BookingService/internal/domain"
	"github.com/branchmaster/BM-BookingService/pkg/dbmetrics"
	"github.com/branchmaster/BM-BookingService/pkg/psqlbuilder"
	"github.com/branchmaster/BM-BookingService/pkg/types"
)

// Repository репозиторий для работы с окнами доступности ресурсов
// и их ad-hoc блокировками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var availabilityColumns = []string{
	"id",
	"branch_id",
	"day_of_week",
	"start_time",
	"end_time",
	"start_date",
	"end_date",
	"name",
}

// GetAvailabilitiesForRange получает окна доступности филиала, чья повторяемость
// может затрагивать диапазон дат [startDate, endDate]
// Точная проверка покрытия конкретной даты выполняется агрегатором по каждому дню
func (r *Repository) GetAvailabilitiesForRange(ctx context.Context, branchID int64, startDate, endDate time.Time) ([]*domain.ResourceAvailability, error) {
	return r.queryAvailabilities(ctx, squirrel.And{
		squirrel.Eq{"branch_id": branchID},
		squirrel.Or{
			squirrel.Eq{"start_date": nil},
			squirrel.Eq{"end_date": nil},
			squirrel.And{squirrel.GtOrEq{"start_date": startDate}, squirrel.LtOrEq{"start_date": endDate}},
			squirrel.And{squirrel.GtOrEq{"end_date": startDate}, squirrel.LtOrEq{"end_date": endDate}},
			squirrel.And{squirrel.Lt{"start_date": startDate}, squirrel.Gt{"end_date": endDate}},
		},
	}, false)
}

// GetAvailabilitiesByBranchID получает все окна доступности филиала
func (r *Repository) GetAvailabilitiesByBranchID(ctx context.Context, branchID int64) ([]*domain.ResourceAvailability, error) {
	return r.queryAvailabilities(ctx, squirrel.Eq{"branch_id": branchID}, false)
}

// FindCandidatesForSlot получает окна доступности, способные вместить запрошенный
// интервал целиком: день недели совпадает, границы повторяемости покрывают дату,
// окно покрывает [startTime, endTime) полностью (не частично)
//
// Внутри транзакции строки блокируются через FOR UPDATE - это часть механизма
// защиты от двойного назначения одного ресурса конкурентными бронированиями
func (r *Repository) FindCandidatesForSlot(
	ctx context.Context,
	branchID int64,
	dayOfWeek int,
	date time.Time,
	startTime, endTime types.TimeString,
) ([]*domain.ResourceAvailability, error) {
	where := squirrel.And{
		squirrel.Eq{"branch_id": branchID},
		squirrel.Eq{"day_of_week": dayOfWeek},
		squirrel.Or{squirrel.Eq{"start_date": nil}, squirrel.LtOrEq{"start_date": date}},
		squirrel.Or{squirrel.Eq{"end_date": nil}, squirrel.GtOrEq{"end_date": date}},
		squirrel.LtOrEq{"start_time": startTime},
		squirrel.GtOrEq{"end_time": endTime},
	}

	return r.queryAvailabilities(ctx, where, dbmetrics.IsInTransaction(ctx))
}

// GetAvailabilityByID получает окно доступности по ID
func (r *Repository) GetAvailabilityByID(ctx context.Context, id int64) (*domain.ResourceAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(availabilityColumns...).
		From("resource_availability").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailabilityByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	availability, err := scanAvailabilityRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailabilityByID - scan row: %v", ErrScanRow, err)
	}

	return availability, nil
}

// CreateAvailability создает окно доступности ресурса
func (r *Repository) CreateAvailability(ctx context.Context, availability *domain.ResourceAvailability) (*domain.ResourceAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("resource_availability").
		Columns(
			"branch_id",
			"day_of_week",
			"start_time",
			"end_time",
			"start_date",
			"end_date",
			"name",
		).
		Values(
			availability.BranchID,
			availability.DayOfWeek,
			availability.StartTime,
			availability.EndTime,
			availability.StartDate,
			availability.EndDate,
			availability.Name,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateAvailability - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&availability.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateAvailability - execute insert: %v", ErrExecQuery, err)
	}

	return availability, nil
}

// UpdateAvailability обновляет окно доступности ресурса
func (r *Repository) UpdateAvailability(ctx context.Context, availability *domain.ResourceAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("resource_availability").
		Set("day_of_week", availability.DayOfWeek).
		Set("start_time", availability.StartTime).
		Set("end_time", availability.EndTime).
		Set("start_date", availability.StartDate).
		Set("end_date", availability.EndDate).
		Set("name", availability.Name).
		Where(squirrel.Eq{"id": availability.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateAvailability - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateAvailability - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateAvailability - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}

// DeleteAvailability удаляет окно доступности ресурса
func (r *Repository) DeleteAvailability(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("resource_availability").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteAvailability - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteAvailability - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteAvailability - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}

// FindBlockedResourceIDs получает ID ресурсов, заблокированных на дату блокировками,
// пересекающими [startTime, endTime), включая блокировки на весь день
func (r *Repository) FindBlockedResourceIDs(
	ctx context.Context,
	branchID int64,
	date time.Time,
	startTime, endTime types.TimeString,
) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT available_resource_id").
		From("resource_unavailability").
		Where(squirrel.And{
			squirrel.Eq{"branch_id": branchID},
			squirrel.Eq{"date": date},
			squirrel.Or{
				// Блокировка на весь день
				squirrel.And{squirrel.Eq{"start_time": nil}, squirrel.Eq{"end_time": nil}},
				// Частичная блокировка, пересекающая запрошенный интервал
				squirrel.And{squirrel.Lt{"start_time": endTime}, squirrel.Gt{"end_time": startTime}},
			},
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindBlockedResourceIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindBlockedResourceIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: FindBlockedResourceIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindBlockedResourceIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// GetUnavailabilityForRange получает блокировки ресурсов филиала за период
func (r *Repository) GetUnavailabilityForRange(ctx context.Context, branchID int64, startDate, endDate time.Time) ([]*domain.ResourceUnavailability, error) {
	return r.queryUnavailabilities(ctx, squirrel.And{
		squirrel.Eq{"branch_id": branchID},
		squirrel.GtOrEq{"date": startDate},
		squirrel.LtOrEq{"date": endDate},
	})
}

// GetUnavailabilityByBranchID получает все блокировки ресурсов филиала
func (r *Repository) GetUnavailabilityByBranchID(ctx context.Context, branchID int64) ([]*domain.ResourceUnavailability, error) {
	return r.queryUnavailabilities(ctx, squirrel.Eq{"branch_id": branchID})
}

// GetUnavailabilityByID получает блокировку по ID
func (r *Repository) GetUnavailabilityByID(ctx context.Context, id int64) (*domain.ResourceUnavailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"available_resource_id",
		"branch_id",
		"date",
		"start_time",
		"end_time",
		"reason",
	).
		From("resource_unavailability").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUnavailabilityByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	unavailability, err := scanUnavailabilityRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrUnavailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnavailabilityByID - scan row: %v", ErrScanRow, err)
	}

	return unavailability, nil
}

// CreateUnavailability создает блокировку ресурса
func (r *Repository) CreateUnavailability(ctx context.Context, unavailability *domain.ResourceUnavailability) (*domain.ResourceUnavailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("resource_unavailability").
		Columns(
			"available_resource_id",
			"branch_id",
			"date",
			"start_time",
			"end_time",
			"reason",
		).
		Values(
			unavailability.AvailableResourceID,
			unavailability.BranchID,
			unavailability.Date,
			unavailability.StartTime,
			unavailability.EndTime,
			unavailability.Reason,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateUnavailability - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&unavailability.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateUnavailability - execute insert: %v", ErrExecQuery, err)
	}

	return unavailability, nil
}

// DeleteUnavailability удаляет блокировку ресурса
func (r *Repository) DeleteUnavailability(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("resource_unavailability").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteUnavailability - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteUnavailability - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteUnavailability - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrUnavailabilityNotFound
	}

	return nil
}

func (r *Repository) queryAvailabilities(ctx context.Context, where squirrel.Sqlizer, forUpdate bool) ([]*domain.ResourceAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(availabilityColumns...).
		From("resource_availability").
		Where(where).
		OrderBy("id ASC")

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: queryAvailabilities - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: queryAvailabilities - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	availabilities := make([]*domain.ResourceAvailability, 0)
	for rows.Next() {
		availability, err := scanAvailabilityRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: queryAvailabilities - scan row: %v", ErrScanRow, err)
		}
		availabilities = append(availabilities, availability)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: queryAvailabilities - rows error: %v", ErrScanRow, err)
	}

	return availabilities, nil
}

func (r *Repository) queryUnavailabilities(ctx context.Context, where squirrel.Sqlizer) ([]*domain.ResourceUnavailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"available_resource_id",
		"branch_id",
		"date",
		"start_time",
		"end_time",
		"reason",
	).
		From("resource_unavailability").
		Where(where).
		OrderBy("date ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: queryUnavailabilities - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: queryUnavailabilities - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	unavailabilities := make([]*domain.ResourceUnavailability, 0)
	for rows.Next() {
		unavailability, err := scanUnavailabilityRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: queryUnavailabilities - scan row: %v", ErrScanRow, err)
		}
		unavailabilities = append(unavailabilities, unavailability)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: queryUnavailabilities - rows error: %v", ErrScanRow, err)
	}

	return unavailabilities, nil
}

func scanAvailabilityRow(scan func(dest ...interface{}) error) (*domain.ResourceAvailability, error) {
	var availability domain.ResourceAvailability
	var startDate, endDate sql.NullTime
	var name sql.NullString

	err := scan(
		&availability.ID,
		&availability.BranchID,
		&availability.DayOfWeek,
		&availability.StartTime,
		&availability.EndTime,
		&startDate,
		&endDate,
		&name,
	)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		availability.StartDate = &startDate.Time
	}
	if endDate.Valid {
		availability.EndDate = &endDate.Time
	}
	availability.Name = name.String

	return &availability, nil
}

func scanUnavailabilityRow(scan func(dest ...interface{}) error) (*domain.ResourceUnavailability, error) {
	var unavailability domain.ResourceUnavailability
	var startTime, endTime types.TimeString
	var reason sql.NullString

	err := scan(
		&unavailability.ID,
		&unavailability.AvailableResourceID,
		&unavailability.BranchID,
		&unavailability.Date,
		&startTime,
		&endTime,
		&reason,
	)
	if err != nil {
		return nil, err
	}

	// NULL в обеих колонках времени означает блокировку на весь день
	if !startTime.IsZero() {
		unavailability.StartTime = &startTime
	}
	if !endTime.IsZero() {
		unavailability.EndTime = &endTime
	}
	unavailability.Reason = reason.String

	return &unavailability, nil
}
