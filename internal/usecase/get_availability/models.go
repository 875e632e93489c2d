package get_availability

import (
	"time"

	"github.com/branchmaster/BM-BookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BranchID  int64     // ID филиала
	StartDate time.Time // Начало диапазона (включительно, без времени)
	EndDate   time.Time // Конец диапазона (включительно, без времени)
}

// DayAvailability слоты одного календарного дня
type DayAvailability struct {
	Date      time.Time
	Timeslots []domain.Timeslot
}

// Response модель ответа: дни по возрастанию, внутри дня слоты по возрастанию
// времени начала. Дни без часов работы или без единого слота отсутствуют
type Response struct {
	BranchID int64
	Days     []DayAvailability
}
