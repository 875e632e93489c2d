package create_appointment

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("create_appointment: branch not found")

	// ErrBranchClosed возвращается, когда филиал не работает в запрошенное время
	ErrBranchClosed = errors.New("create_appointment: branch is closed at requested time")

	// ErrNoAvailableResource возвращается, когда ни один ресурс не может
	// принять запись на запрошенный интервал
	ErrNoAvailableResource = errors.New("create_appointment: no available resource")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
