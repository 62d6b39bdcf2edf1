package domain

import (
	"strings"
	"time"
)

// Service represents a bookable service offered by a company
type Service struct {
	ID                      int64
	CompanyID               int64
	Title                   string
	Description             string
	IsActive                bool
	CanAcceptUserCustomTime bool
	HasQuantity             bool
	Price                   int64
	Presentation            Presentation
	AssignedStaffID         *int64
	SubServiceID            *int64
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// Check проверяет ограничения услуги
func (s *Service) Check() error {
	if strings.TrimSpace(s.Title) == "" {
		return NewStructuralError("title", "title is required")
	}
	if s.Price < 0 {
		return Violation(ConstraintServicePriceNonNeg)
	}
	if s.SubServiceID != nil && s.ID != 0 && *s.SubServiceID == s.ID {
		return Violation(ConstraintServiceNoSelfSubService)
	}
	if !s.Presentation.IsValid() {
		return Violation(ConstraintServiceValidPresentation)
	}
	return nil
}
