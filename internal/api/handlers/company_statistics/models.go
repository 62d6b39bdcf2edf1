package company_statistics

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// StatisticsResponse HTTP response model
type StatisticsResponse struct {
	CompanyID   int64 `json:"companyId"`
	BranchCount int   `json:"branchCount"`
	StaffCount  int   `json:"staffCount"`
	TotalBooks  int   `json:"totalBooks"`
}

func fromDomain(s *domain.CompanyStatistics) *StatisticsResponse {
	return &StatisticsResponse{
		CompanyID:   s.CompanyID,
		BranchCount: s.BranchCount,
		StaffCount:  s.StaffCount,
		TotalBooks:  s.TotalBooks,
	}
}
