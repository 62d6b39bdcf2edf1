package domain

import (
	"strings"
	"time"
)

// Company represents a company that owns branches, services and staff
// Counters are derived and recomputed only by the statistics service
type Company struct {
	ID          int64
	Name        string
	BranchCount int
	StaffCount  int
	TotalBooks  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CompanyStatistics derived counters of a company
type CompanyStatistics struct {
	CompanyID   int64
	BranchCount int
	StaffCount  int
	TotalBooks  int
}

// Statistics returns the derived counters of the company
func (c *Company) Statistics() *CompanyStatistics {
	return &CompanyStatistics{
		CompanyID:   c.ID,
		BranchCount: c.BranchCount,
		StaffCount:  c.StaffCount,
		TotalBooks:  c.TotalBooks,
	}
}

// Check проверяет ограничения компании перед записью
func (c *Company) Check() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewStructuralError("company_name", "company name is required")
	}
	return c.Statistics().Check()
}

// Check проверяет неотрицательность счетчиков
func (s *CompanyStatistics) Check() error {
	switch {
	case s.BranchCount < 0:
		return Violation(ConstraintCompanyBranchCountNonNeg)
	case s.StaffCount < 0:
		return Violation(ConstraintCompanyStaffCountNonNeg)
	case s.TotalBooks < 0:
		return Violation(ConstraintCompanyTotalBooksNonNeg)
	}
	return nil
}
