package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/branchmaster/BM-BookingService/internal/domain"
	"github.com/branchmaster/BM-BookingService/pkg/dbmetrics"
	"github.com/branchmaster/BM-BookingService/pkg/psqlbuilder"
	"github.com/branchmaster/BM-BookingService/pkg/types"
)

// pgUniqueViolation SQLSTATE нарушения уникальности в Postgres
const pgUniqueViolation = "23505"

// Repository репозиторий для работы с записями на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var appointmentColumns = []string{
	"id",
	"branch_id",
	"appointment_date",
	"start_time",
	"end_time",
	"status",
	"resource_availability_id",
	"name",
	"email",
	"phone_number",
	"reason",
	"created_at",
}

// Create создает новую запись на приём
// Нарушение частичного уникального индекса (ресурс уже занят на этот слот
// другой BOOKED-записью) возвращается как ErrConflict
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointment").
		Columns(
			"branch_id",
			"appointment_date",
			"start_time",
			"end_time",
			"status",
			"resource_availability_id",
			"name",
			"email",
			"phone_number",
			"reason",
		).
		Values(
			appt.BranchID,
			appt.AppointmentDate,
			appt.StartTime,
			appt.EndTime,
			appt.Status,
			appt.ResourceAvailabilityID,
			appt.Name,
			appt.Email,
			appt.PhoneNumber,
			appt.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointment").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку - отмена выполняется как
	// read-check-write и не должна гоняться сама с собой
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	appt, err := scanAppointmentRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// FindBookedForRange получает BOOKED-записи филиала за период
func (r *Repository) FindBookedForRange(ctx context.Context, branchID int64, startDate, endDate time.Time) ([]*domain.Appointment, error) {
	return r.queryAppointments(ctx, squirrel.And{
		squirrel.Eq{"branch_id": branchID},
		squirrel.GtOrEq{"appointment_date": startDate},
		squirrel.LtOrEq{"appointment_date": endDate},
		squirrel.Eq{"status": domain.StatusBooked},
	})
}

// FindBookedForDate получает BOOKED-записи филиала на конкретную дату
func (r *Repository) FindBookedForDate(ctx context.Context, branchID int64, date time.Time) ([]*domain.Appointment, error) {
	return r.queryAppointments(ctx, squirrel.And{
		squirrel.Eq{"branch_id": branchID},
		squirrel.Eq{"appointment_date": date},
		squirrel.Eq{"status": domain.StatusBooked},
	})
}

// FindBookedResourceIDs получает ID ресурсов, занятых BOOKED-записями,
// пересекающими [startTime, endTime) на указанную дату
func (r *Repository) FindBookedResourceIDs(
	ctx context.Context,
	branchID int64,
	date time.Time,
	startTime, endTime types.TimeString,
) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT resource_availability_id").
		From("appointment").
		Where(squirrel.And{
			squirrel.Eq{"branch_id": branchID},
			squirrel.Eq{"appointment_date": date},
			squirrel.Eq{"status": domain.StatusBooked},
			// Строгие неравенства: граничащие интервалы не пересекаются
			squirrel.Lt{"start_time": endTime},
			squirrel.Gt{"end_time": startTime},
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindBookedResourceIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindBookedResourceIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: FindBookedResourceIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindBookedResourceIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointment").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) queryAppointments(ctx context.Context, where squirrel.Sqlizer) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointment").
		Where(where).
		OrderBy("appointment_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: queryAppointments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: queryAppointments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointmentRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: queryAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: queryAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func scanAppointmentRow(scan func(dest ...interface{}) error) (*domain.Appointment, error) {
	var appt domain.Appointment
	var name, email, phone, reason sql.NullString
	var createdAt sql.NullTime

	err := scan(
		&appt.ID,
		&appt.BranchID,
		&appt.AppointmentDate,
		&appt.StartTime,
		&appt.EndTime,
		&appt.Status,
		&appt.ResourceAvailabilityID,
		&name,
		&email,
		&phone,
		&reason,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	appt.Name = name.String
	appt.Email = email.String
	appt.PhoneNumber = phone.String
	appt.Reason = reason.String
	appt.CreatedAt = createdAt.Time

	return &appt, nil
}
