package get_availability

import (
	"time"

	"github.com/branchmaster/BM-BookingService/internal/domain"
	getAvailability "github.com/branchmaster/BM-BookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	BranchID int64             `json:"branchId"`
	Days     []DayAvailability `json:"days"`
}

// DayAvailability слоты одного дня
type DayAvailability struct {
	Date      string     `json:"date"`
	Timeslots []Timeslot `json:"timeslots"`
}

// Timeslot модель временного слота
type Timeslot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"` // AVAILABLE | FULLY_BOOKED
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(branchID int64, startDateStr, endDateStr string) (*getAvailability.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, startDateStr)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, endDateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		BranchID:  branchID,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	days := make([]DayAvailability, len(resp.Days))
	for i, day := range resp.Days {
		timeslots := make([]Timeslot, len(day.Timeslots))
		for j, slot := range day.Timeslots {
			timeslots[j] = Timeslot{
				StartTime: slot.StartTime.String(),
				EndTime:   slot.EndTime.String(),
				Status:    string(slot.Status),
			}
		}
		days[i] = DayAvailability{
			Date:      day.Date.Format(domain.DateFormat),
			Timeslots: timeslots,
		}
	}

	return &AvailabilityResponse{
		BranchID: resp.BranchID,
		Days:     days,
	}
}
