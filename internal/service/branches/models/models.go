package models

import (
	"github.com/branchmaster/BM-BookingService/internal/domain"
)

// Request модели

// UpdateOperatingHoursRequest запрос на обновление часов работы одного дня
type UpdateOperatingHoursRequest struct {
	OpeningTime string `json:"openingTime"` // "09:00", игнорируется при closed=true
	ClosingTime string `json:"closingTime"` // "18:00", игнорируется при closed=true
	Closed      bool   `json:"closed"`
}

// Response модели

// BranchResponse ответ с данными филиала
type BranchResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	TimeslotLength int    `json:"timeslotLength"` // Длина слота в минутах
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
}

// BranchListResponse ответ со списком филиалов
type BranchListResponse struct {
	Branches []BranchResponse `json:"branches"`
}

// OperatingHoursResponse часы работы одного дня недели
type OperatingHoursResponse struct {
	ID          int64  `json:"id"`
	BranchID    int64  `json:"branchId"`
	DayOfWeek   int    `json:"dayOfWeek"` // 0=воскресенье .. 6=суббота
	OpeningTime string `json:"openingTime,omitempty"`
	ClosingTime string `json:"closingTime,omitempty"`
	Closed      bool   `json:"closed"`
}

// OperatingHoursListResponse часы работы на неделю
type OperatingHoursListResponse struct {
	OperatingHours []OperatingHoursResponse `json:"operatingHours"`
}

// FromDomainBranch конвертирует domain модель в response
func FromDomainBranch(b *domain.Branch) *BranchResponse {
	return &BranchResponse{
		ID:             b.ID,
		Name:           b.Name,
		TimeslotLength: b.TimeslotLength,
		Address:        b.Address,
		City:           b.City,
	}
}

// FromDomainBranchList конвертирует список domain моделей в response
func FromDomainBranchList(branches []*domain.Branch) *BranchListResponse {
	result := make([]BranchResponse, 0, len(branches))
	for _, b := range branches {
		result = append(result, *FromDomainBranch(b))
	}
	return &BranchListResponse{Branches: result}
}

// FromDomainOperatingHours конвертирует domain модель в response
func FromDomainOperatingHours(oh *domain.OperatingHours) *OperatingHoursResponse {
	resp := &OperatingHoursResponse{
		ID:        oh.ID,
		BranchID:  oh.BranchID,
		DayOfWeek: oh.DayOfWeek,
		Closed:    oh.Closed,
	}
	if !oh.Closed {
		resp.OpeningTime = oh.OpeningTime.String()
		resp.ClosingTime = oh.ClosingTime.String()
	}
	return resp
}

// FromDomainOperatingHoursList конвертирует список domain моделей в response
func FromDomainOperatingHoursList(hours []*domain.OperatingHours) *OperatingHoursListResponse {
	result := make([]OperatingHoursResponse, 0, len(hours))
	for _, oh := range hours {
		result = append(result, *FromDomainOperatingHours(oh))
	}
	return &OperatingHoursListResponse{OperatingHours: result}
}
