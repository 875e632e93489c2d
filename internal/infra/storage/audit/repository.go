package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/branchmaster/BM-BookingService/pkg/dbmetrics"
	"github.com/branchmaster/BM-BookingService/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("audit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("audit.repository: failed to execute query")
)

// Entry строка журнала административных действий
type Entry struct {
	ID         int64
	StaffID    int64
	ActionType string
	Params     []byte // JSONB
	CreatedAt  time.Time
}

// Repository репозиторий журнала административных действий
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет строку в журнал
func (r *Repository) Create(ctx context.Context, entry *Entry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("admin_action_audit").
		Columns("staff_id", "action_type", "params", "created_at").
		Values(entry.StaffID, entry.ActionType, entry.Params, entry.CreatedAt).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
