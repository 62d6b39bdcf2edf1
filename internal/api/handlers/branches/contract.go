package branches

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/branches/models"
)

type BranchService interface {
	Create(ctx context.Context, req *models.BranchRequest) (*models.BranchResponse, error)
	Update(ctx context.Context, id int64, req *models.BranchRequest) (*models.BranchResponse, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.BranchResponse, error)
	List(ctx context.Context, companyID *int64) (*models.BranchListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
