package create_appointment

import (
	"time"

	"github.com/branchmaster/BM-BookingService/internal/domain"
	"github.com/branchmaster/BM-BookingService/pkg/types"
)

// Request модель запроса на создание записи
// Пустой EndTime означает один слот: конец равен началу плюс длина слота филиала
type Request struct {
	BranchID  int64            // ID филиала
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Начало интервала
	EndTime   types.TimeString // Конец интервала, может покрывать несколько слотов
	// Контактные данные клиента - ядро их не интерпретирует
	Name        string
	Email       string
	PhoneNumber string
	Reason      string
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
}
