package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	categoryRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/category"
	companyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/company"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
	"github.com/m04kA/SMC-AppointmentService/internal/service/statistics"
)

// Service сервис каталога: компании, услуги, категории и связи категория-услуга
type Service struct {
	companyRepo  CompanyRepository
	serviceRepo  ServiceRepository
	categoryRepo CategoryRepository
	dispatcher   StatisticsDispatcher
	txManager    TransactionManager
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	companyRepo CompanyRepository,
	serviceRepo ServiceRepository,
	categoryRepo CategoryRepository,
	dispatcher StatisticsDispatcher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		companyRepo:  companyRepo,
		serviceRepo:  serviceRepo,
		categoryRepo: categoryRepo,
		dispatcher:   dispatcher,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// CreateCompany создает компанию с нулевыми счетчиками
func (s *Service) CreateCompany(ctx context.Context, req *models.CreateCompanyRequest) (*models.CompanyResponse, error) {
	s.logger.Info("CreateCompany: name=%s", req.Name)

	company, err := s.companyRepo.Create(ctx, &domain.Company{Name: req.Name})
	if err != nil {
		return nil, s.rejected("CreateCompany", err)
	}

	s.logger.Info("CreateCompany: company id=%d created", company.ID)
	return models.FromDomainCompany(company), nil
}

// ListCompanies возвращает все компании с их счетчиками
func (s *Service) ListCompanies(ctx context.Context) (*models.CompanyListResponse, error) {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListCompanies: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCompanies - repository error: %v", ErrInternal, err)
	}

	resp := &models.CompanyListResponse{Companies: make([]models.CompanyResponse, 0, len(companies))}
	for _, c := range companies {
		resp.Companies = append(resp.Companies, *models.FromDomainCompany(c))
	}
	return resp, nil
}

// UpdateCompany переименовывает компанию
// Счетчики ведет только пересчет статистики, через этот метод они не меняются
func (s *Service) UpdateCompany(ctx context.Context, companyID int64, req *models.UpdateCompanyRequest) (*models.CompanyResponse, error) {
	s.logger.Info("UpdateCompany: company=%d, name=%s", companyID, req.Name)

	if err := s.companyRepo.Rename(ctx, companyID, req.Name); err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			s.logger.Warn("UpdateCompany: company id=%d not found", companyID)
			return nil, ErrCompanyNotFound
		}
		return nil, s.rejected("UpdateCompany", err)
	}

	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("%w: UpdateCompany - get company: %v", ErrInternal, err)
	}

	return models.FromDomainCompany(company), nil
}

// CreateService создает услугу компании
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: company=%d, title=%s", req.CompanyID, req.Title)

	if _, err := s.companyRepo.GetByID(ctx, req.CompanyID); err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			s.logger.Warn("CreateService: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("%w: CreateService - get company: %v", ErrInternal, err)
	}

	service := req.ToDomain()
	if service.SubServiceID != nil {
		if _, err := s.serviceRepo.GetByID(ctx, *service.SubServiceID); err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				return nil, ErrServiceNotFound
			}
			return nil, fmt.Errorf("%w: CreateService - get sub-service: %v", ErrInternal, err)
		}
	}

	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		return nil, s.rejected("CreateService", err)
	}

	s.logger.Info("CreateService: service id=%d created", created.ID)
	return models.FromDomainService(created), nil
}

// CreateCategory создает категорию
func (s *Service) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.CategoryResponse, error) {
	s.logger.Info("CreateCategory: title=%s", req.Title)

	category, err := s.categoryRepo.Create(ctx, &domain.Category{Title: req.Title})
	if err != nil {
		return nil, s.rejected("CreateCategory", err)
	}

	return &models.CategoryResponse{
		ID:            category.ID,
		Title:         category.Title,
		TotalServices: category.TotalServices,
		ServiceIDs:    []int64{},
	}, nil
}

// ListCategories возвращает все категории со списками услуг
func (s *Service) ListCategories(ctx context.Context) (*models.CategoryListResponse, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListCategories: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCategories - repository error: %v", ErrInternal, err)
	}

	resp := &models.CategoryListResponse{Categories: make([]models.CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		ids, err := s.categoryRepo.ServiceIDs(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: ListCategories - list services: %v", ErrInternal, err)
		}
		if ids == nil {
			ids = []int64{}
		}
		resp.Categories = append(resp.Categories, models.CategoryResponse{
			ID:            c.ID,
			Title:         c.Title,
			TotalServices: c.TotalServices,
			ServiceIDs:    ids,
		})
	}
	return resp, nil
}

// UpdateCategory переименовывает категорию
func (s *Service) UpdateCategory(ctx context.Context, categoryID int64, req *models.UpdateCategoryRequest) (*models.CategoryResponse, error) {
	s.logger.Info("UpdateCategory: category=%d, title=%s", categoryID, req.Title)

	if err := s.categoryRepo.Rename(ctx, categoryID, req.Title); err != nil {
		if errors.Is(err, categoryRepo.ErrCategoryNotFound) {
			s.logger.Warn("UpdateCategory: category id=%d not found", categoryID)
			return nil, ErrCategoryNotFound
		}
		return nil, s.rejected("UpdateCategory", err)
	}

	return s.categoryResponse(ctx, "UpdateCategory", categoryID)
}

// AddServices добавляет услуги в категорию и пересчитывает total_services
// Уже связанные услуги пропускаются
func (s *Service) AddServices(ctx context.Context, categoryID int64, req *models.CategoryServicesRequest) (*models.CategoryResponse, error) {
	ids := uniqueIDs(req.ServiceIDs)
	s.logger.Info("AddServices: category=%d, services=%v", categoryID, ids)

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: serviceIds must not be empty", ErrInvalidInput)
	}

	return s.changeServices(ctx, "AddServices", categoryID, statistics.TriggerCategoryServicesAdded, func(txCtx context.Context) error {
		existing, err := s.serviceRepo.CountExisting(txCtx, ids)
		if err != nil {
			return fmt.Errorf("%w: AddServices - count services: %v", ErrInternal, err)
		}
		if existing != len(ids) {
			s.logger.Warn("AddServices: %d of %d services not found", len(ids)-existing, len(ids))
			return ErrServiceNotFound
		}
		return s.categoryRepo.AddServices(txCtx, categoryID, ids)
	})
}

// RemoveServices удаляет услуги из категории и пересчитывает total_services
func (s *Service) RemoveServices(ctx context.Context, categoryID int64, req *models.CategoryServicesRequest) (*models.CategoryResponse, error) {
	ids := uniqueIDs(req.ServiceIDs)
	s.logger.Info("RemoveServices: category=%d, services=%v", categoryID, ids)

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: serviceIds must not be empty", ErrInvalidInput)
	}

	return s.changeServices(ctx, "RemoveServices", categoryID, statistics.TriggerCategoryServicesRemoved, func(txCtx context.Context) error {
		return s.categoryRepo.RemoveServices(txCtx, categoryID, ids)
	})
}

// ClearServices удаляет все услуги из категории
func (s *Service) ClearServices(ctx context.Context, categoryID int64) (*models.CategoryResponse, error) {
	s.logger.Info("ClearServices: category=%d", categoryID)

	return s.changeServices(ctx, "ClearServices", categoryID, statistics.TriggerCategoryServicesCleared, func(txCtx context.Context) error {
		return s.categoryRepo.ClearServices(txCtx, categoryID)
	})
}

// GetCategory возвращает категорию со списком услуг
func (s *Service) GetCategory(ctx context.Context, categoryID int64) (*models.CategoryResponse, error) {
	return s.categoryResponse(ctx, "GetCategory", categoryID)
}

// changeServices меняет связи категории и пересчитывает счетчик в одной транзакции
func (s *Service) changeServices(
	ctx context.Context,
	op string,
	categoryID int64,
	trigger statistics.Trigger,
	change func(txCtx context.Context) error,
) (*models.CategoryResponse, error) {
	var result *models.CategoryResponse

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.getCategory(txCtx, op, categoryID); err != nil {
			return err
		}

		if err := change(txCtx); err != nil {
			if errors.Is(err, ErrServiceNotFound) || errors.Is(err, ErrInternal) {
				return err
			}
			s.logger.Error("%s: repository error for category=%d: %v", op, categoryID, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}

		if err := s.dispatcher.Dispatch(txCtx, trigger, categoryID); err != nil {
			return fmt.Errorf("%w: %s - recompute statistics: %w", ErrInternal, op, err)
		}

		resp, err := s.categoryResponse(txCtx, op, categoryID)
		if err != nil {
			return err
		}
		result = resp
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: category=%d now has %d services", op, categoryID, result.TotalServices)
	return result, nil
}

func (s *Service) categoryResponse(ctx context.Context, op string, categoryID int64) (*models.CategoryResponse, error) {
	category, err := s.getCategory(ctx, op, categoryID)
	if err != nil {
		return nil, err
	}

	ids, err := s.categoryRepo.ServiceIDs(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - list services: %v", ErrInternal, op, err)
	}
	if ids == nil {
		ids = []int64{}
	}

	return &models.CategoryResponse{
		ID:            category.ID,
		Title:         category.Title,
		TotalServices: category.TotalServices,
		ServiceIDs:    ids,
	}, nil
}

func (s *Service) getCategory(ctx context.Context, op string, id int64) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, categoryRepo.ErrCategoryNotFound) {
			s.logger.Warn("%s: category id=%d not found", op, id)
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("%s: repository error for category id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return category, nil
}

func (s *Service) rejected(op string, err error) error {
	if vErr, ok := domain.AsValidationError(err); ok {
		s.metrics.IncValidationRejection(op, vErr.KindName())
		s.logger.Warn("%s: validation failed: %v", op, vErr)
		return vErr
	}
	s.logger.Error("%s: %v", op, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
