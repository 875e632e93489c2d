package models

import (
	"time"

	"github.com/branchmaster/BM-BookingService/internal/domain"
	"github.com/branchmaster/BM-BookingService/pkg/ptr"
)

// Request модели

// SaveAvailabilityRequest запрос на создание или обновление окна ресурса
type SaveAvailabilityRequest struct {
	DayOfWeek int     `json:"dayOfWeek"` // 0=воскресенье .. 6=суббота
	StartTime string  `json:"startTime"` // "09:00"
	EndTime   string  `json:"endTime"`   // "18:00"
	StartDate *string `json:"startDate,omitempty"` // "2025-10-01", null = без нижней границы
	EndDate   *string `json:"endDate,omitempty"`   // "2025-12-31", null = без верхней границы
	Name      string  `json:"name"`
}

// CreateUnavailabilityRequest запрос на создание блокировки ресурса
// Оба времени null означают блокировку на весь день
type CreateUnavailabilityRequest struct {
	ResourceAvailabilityID int64   `json:"resourceAvailabilityId"`
	Date                   string  `json:"date"` // "2025-10-15"
	StartTime              *string `json:"startTime,omitempty"`
	EndTime                *string `json:"endTime,omitempty"`
	Reason                 string  `json:"reason,omitempty"`
}

// Response модели

// AvailabilityResponse окно ресурса
type AvailabilityResponse struct {
	ID        int64   `json:"id"`
	BranchID  int64   `json:"branchId"`
	DayOfWeek int     `json:"dayOfWeek"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	Name      string  `json:"name"`
}

// UnavailabilityResponse блокировка ресурса
type UnavailabilityResponse struct {
	ID                     int64   `json:"id"`
	ResourceAvailabilityID int64   `json:"resourceAvailabilityId"`
	BranchID               int64   `json:"branchId"`
	Date                   string  `json:"date"`
	StartTime              *string `json:"startTime,omitempty"`
	EndTime                *string `json:"endTime,omitempty"`
	WholeDay               bool    `json:"wholeDay"`
	Reason                 string  `json:"reason,omitempty"`
}

// ResourceListResponse окна ресурсов и их блокировки для филиала
type ResourceListResponse struct {
	Resources      []AvailabilityResponse   `json:"resources"`
	Unavailability []UnavailabilityResponse `json:"unavailability"`
}

// FromDomainAvailability конвертирует domain модель в response
func FromDomainAvailability(a *domain.ResourceAvailability) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		ID:        a.ID,
		BranchID:  a.BranchID,
		DayOfWeek: a.DayOfWeek,
		StartTime: a.StartTime.String(),
		EndTime:   a.EndTime.String(),
		Name:      a.Name,
	}
	resp.StartDate = formatDatePtr(a.StartDate)
	resp.EndDate = formatDatePtr(a.EndDate)
	return resp
}

// FromDomainUnavailability конвертирует domain модель в response
func FromDomainUnavailability(u *domain.ResourceUnavailability) *UnavailabilityResponse {
	resp := &UnavailabilityResponse{
		ID:                     u.ID,
		ResourceAvailabilityID: u.AvailableResourceID,
		BranchID:               u.BranchID,
		Date:                   u.Date.Format(domain.DateFormat),
		WholeDay:               u.IsWholeDay(),
		Reason:                 u.Reason,
	}
	if u.StartTime != nil {
		resp.StartTime = ptr.Ptr(u.StartTime.String())
	}
	if u.EndTime != nil {
		resp.EndTime = ptr.Ptr(u.EndTime.String())
	}
	return resp
}

// FromDomainResourceLists собирает полный ответ по ресурсам филиала
func FromDomainResourceLists(availabilities []*domain.ResourceAvailability, unavailabilities []*domain.ResourceUnavailability) *ResourceListResponse {
	resources := make([]AvailabilityResponse, 0, len(availabilities))
	for _, a := range availabilities {
		resources = append(resources, *FromDomainAvailability(a))
	}
	blocks := make([]UnavailabilityResponse, 0, len(unavailabilities))
	for _, u := range unavailabilities {
		blocks = append(blocks, *FromDomainUnavailability(u))
	}
	return &ResourceListResponse{
		Resources:      resources,
		Unavailability: blocks,
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return ptr.Ptr(t.Format(domain.DateFormat))
}
