package get_company_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	companyID int64,
	branchIDStr string,
	paymentStatusStr string,
	dateStr string,
	includeCanceledStr string,
) (*models.GetCompanyBookingsRequest, error) {
	req := &models.GetCompanyBookingsRequest{CompanyID: companyID}

	if branchIDStr != "" {
		branchID, err := strconv.ParseInt(branchIDStr, 10, 64)
		if err != nil || branchID <= 0 {
			return nil, fmt.Errorf("invalid branchId value: %q", branchIDStr)
		}
		req.BranchID = &branchID
	}

	if paymentStatusStr != "" {
		req.PaymentStatus = &paymentStatusStr
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date value: %w", err)
		}
		req.Date = &date
	}

	if includeCanceledStr != "" {
		includeCanceled, err := strconv.ParseBool(includeCanceledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCanceled value: %w", err)
		}
		req.IncludeCanceled = includeCanceled
	}

	return req, nil
}
