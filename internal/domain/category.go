package domain

import "strings"

// Category groups services; TotalServices is the live size of the association
type Category struct {
	ID            int64
	Title         string
	TotalServices int
}

// Check проверяет ограничения категории
func (c *Category) Check() error {
	if strings.TrimSpace(c.Title) == "" {
		return Violation(ConstraintCategoryTitleNotEmpty)
	}
	if c.TotalServices < 0 {
		return Violation(ConstraintCategoryTotalNonNeg)
	}
	return nil
}
