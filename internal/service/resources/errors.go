package resources

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("branch not found")

	// ErrResourceNotFound возвращается, когда окно ресурса не найдено
	ErrResourceNotFound = errors.New("resource availability not found")

	// ErrUnavailabilityNotFound возвращается, когда блокировка не найдена
	ErrUnavailabilityNotFound = errors.New("resource unavailability not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
