package get_availability

import (
	"fmt"
)

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *Request) error {
	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branch_id must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", ErrInvalidInput)
	}

	if req.EndDate.IsZero() {
		return fmt.Errorf("%w: end_date is required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) && !isSameDay(req.StartDate, req.EndDate) {
		return fmt.Errorf("%w: end_date %s is before start_date %s",
			ErrInvalidDateRange, req.EndDate.Format("2006-01-02"), req.StartDate.Format("2006-01-02"))
	}

	return nil
}
