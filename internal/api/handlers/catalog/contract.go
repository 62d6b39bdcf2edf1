package catalog

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

type CatalogService interface {
	CreateCompany(ctx context.Context, req *models.CreateCompanyRequest) (*models.CompanyResponse, error)
	ListCompanies(ctx context.Context) (*models.CompanyListResponse, error)
	UpdateCompany(ctx context.Context, companyID int64, req *models.UpdateCompanyRequest) (*models.CompanyResponse, error)
	CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.CategoryResponse, error)
	GetCategory(ctx context.Context, categoryID int64) (*models.CategoryResponse, error)
	ListCategories(ctx context.Context) (*models.CategoryListResponse, error)
	UpdateCategory(ctx context.Context, categoryID int64, req *models.UpdateCategoryRequest) (*models.CategoryResponse, error)
	AddServices(ctx context.Context, categoryID int64, req *models.CategoryServicesRequest) (*models.CategoryResponse, error)
	RemoveServices(ctx context.Context, categoryID int64, req *models.CategoryServicesRequest) (*models.CategoryResponse, error)
	ClearServices(ctx context.Context, categoryID int64) (*models.CategoryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
