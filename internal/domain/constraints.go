package domain

import "sort"

// Имена ограничений. Совпадают с именами CONSTRAINT / триггеров в migrations/001_init.sql
const (
	ConstraintCompanyNameKey             = "companies_name_key"
	ConstraintCompanyBranchCountNonNeg   = "companies_branch_count_non_negative"
	ConstraintCompanyStaffCountNonNeg    = "companies_staff_count_non_negative"
	ConstraintCompanyTotalBooksNonNeg    = "companies_total_books_non_negative"
	ConstraintBranchCityNotEmpty         = "branches_city_not_empty"
	ConstraintBranchWorkingHoursWeekdays = "branches_working_hours_weekdays"
	ConstraintBranchWorkingHoursWeekends = "branches_working_hours_weekends"
	ConstraintBranchExcludedWeekdays     = "branches_excluded_times_weekdays"
	ConstraintBranchCityLocationKey      = "branches_city_location_key"
	ConstraintCategoryTitleKey           = "categories_title_key"
	ConstraintCategoryTitleNotEmpty      = "categories_title_not_empty"
	ConstraintCategoryTotalNonNeg        = "categories_total_services_non_negative"
	ConstraintServiceTitleKey            = "services_title_key"
	ConstraintServicePriceNonNeg         = "services_price_non_negative"
	ConstraintServiceNoSelfSubService    = "services_no_self_sub_service"
	ConstraintServiceValidPresentation   = "services_valid_presentation"
	ConstraintBookingStartBeforeEnd      = "bookings_start_before_end"
	ConstraintBookingStartInFuture       = "bookings_start_in_future"
	ConstraintBookingValidPaymentStatus  = "bookings_valid_payment_status"
	ConstraintBookingNoOverlap           = "bookings_no_overlap"
	ConstraintOrderValidPaymentStatus    = "orders_valid_payment_status"
	ConstraintOrderFinalPriceNonNeg      = "orders_final_price_non_negative"
	ConstraintOrderItemQuantityPositive  = "order_items_quantity_positive"
	ConstraintOrderItemTotalNonNeg       = "order_items_total_price_non_negative"
	ConstraintOrderItemTotalMatches      = "order_items_total_price_matches"
	ConstraintOrderItemReservationKey    = "order_items_reservation_code_key"
	ConstraintStaffTimesUserKey          = "staff_times_user_key"
	ConstraintStaffTimesNotEmpty         = "staff_times_working_hours_not_empty"
	ConstraintStaffTimesDaysHaveBounds   = "staff_times_days_have_bounds"
	ConstraintStaffTimesUserIsStaff      = "staff_times_user_is_staff"
	ConstraintEventReasonNotEmpty        = "events_reason_not_empty"
	ConstraintEventOffDateInFuture       = "events_off_date_in_future"
	ConstraintCouponCodeKey              = "coupons_code_key"
	ConstraintCouponStartBeforeExpire    = "coupons_start_before_expire"
	ConstraintCouponDiscountInRange      = "coupons_discount_in_range"
	ConstraintCouponUsableCountNonNeg    = "coupons_usable_count_non_negative"
)

// ConstraintSpec описание именованного ограничения сущности
// Одно описание используется и проверкой в приложении, и трансляцией ошибок PostgreSQL
type ConstraintSpec struct {
	Name    string
	Table   string
	Field   string
	Kind    error
	Message string
	Allowed []string
	// InStorage - ограничение объявлено в схеме БД (CHECK/UNIQUE/EXCLUDE/триггер)
	InStorage bool
}

// Violation создает ошибку валидации для нарушенного ограничения
func (s ConstraintSpec) Violation() *ValidationError {
	return &ValidationError{
		Kind:       s.Kind,
		Field:      s.Field,
		Message:    s.Message,
		Constraint: s.Name,
		Allowed:    s.Allowed,
	}
}

var constraintSpecs = map[string]ConstraintSpec{}

func register(specs ...ConstraintSpec) {
	for _, s := range specs {
		constraintSpecs[s.Name] = s
	}
}

func init() {
	register(
		ConstraintSpec{ConstraintCompanyNameKey, "companies", "company_name", ErrUniqueness, "a company with this name already exists", nil, true},
		ConstraintSpec{ConstraintCompanyBranchCountNonNeg, "companies", "branch_count", ErrNonNegative, "branch count cannot be negative", nil, true},
		ConstraintSpec{ConstraintCompanyStaffCountNonNeg, "companies", "staff_count", ErrNonNegative, "staff count cannot be negative", nil, true},
		ConstraintSpec{ConstraintCompanyTotalBooksNonNeg, "companies", "total_books", ErrNonNegative, "total books cannot be negative", nil, true},

		ConstraintSpec{ConstraintBranchCityNotEmpty, "branches", "city", ErrStructural, "city must not be empty", nil, true},
		ConstraintSpec{ConstraintBranchWorkingHoursWeekdays, "branches", "working_hours", ErrStructural, "working_hours must contain weekdays with start and end", nil, true},
		ConstraintSpec{ConstraintBranchWorkingHoursWeekends, "branches", "working_hours", ErrStructural, "if defined, weekends in working_hours must contain start and end", nil, true},
		ConstraintSpec{ConstraintBranchExcludedWeekdays, "branches", "excluded_times", ErrStructural, "excluded_times must contain weekdays with start and end", nil, true},
		ConstraintSpec{ConstraintBranchCityLocationKey, "branches", "location", ErrUniqueness, "a branch with this city and location already exists", nil, true},

		ConstraintSpec{ConstraintCategoryTitleKey, "categories", "title", ErrUniqueness, "a category with this title already exists", nil, true},
		ConstraintSpec{ConstraintCategoryTitleNotEmpty, "categories", "title", ErrStructural, "title is required", nil, true},
		ConstraintSpec{ConstraintCategoryTotalNonNeg, "categories", "total_services", ErrNonNegative, "total services cannot be negative", nil, true},

		ConstraintSpec{ConstraintServiceTitleKey, "services", "title", ErrUniqueness, "a service with this title already exists", nil, true},
		ConstraintSpec{ConstraintServicePriceNonNeg, "services", "price", ErrNonNegative, "price cannot be negative", nil, true},
		ConstraintSpec{ConstraintServiceNoSelfSubService, "services", "sub_service", ErrStructural, "sub-service cannot reference itself", nil, true},
		ConstraintSpec{ConstraintServiceValidPresentation, "services", "presentation", ErrInvalidEnum, "presentation mode is not one of the allowed choices", PresentationValues(), true},

		ConstraintSpec{ConstraintBookingStartBeforeEnd, "bookings", "start_time", ErrOrdering, "start time must be before end time", nil, true},
		ConstraintSpec{ConstraintBookingStartInFuture, "bookings", "start_time", ErrPastStart, "start time must be in the future", nil, true},
		ConstraintSpec{ConstraintBookingValidPaymentStatus, "bookings", "payment_status", ErrInvalidEnum, "payment status is not one of the allowed choices", PaymentStatusValues(), true},
		ConstraintSpec{ConstraintBookingNoOverlap, "bookings", "start_time", ErrOverlap, "this booking overlaps with an existing booking for the same service", nil, true},

		ConstraintSpec{ConstraintOrderValidPaymentStatus, "orders", "payment_status", ErrInvalidEnum, "payment status is not one of the allowed choices", PaymentStatusValues(), true},
		ConstraintSpec{ConstraintOrderFinalPriceNonNeg, "orders", "final_price", ErrNonNegative, "final price must be non-negative", nil, true},

		ConstraintSpec{ConstraintOrderItemQuantityPositive, "order_items", "quantity", ErrNonNegative, "quantity must be at least 1", nil, true},
		ConstraintSpec{ConstraintOrderItemTotalNonNeg, "order_items", "total_price", ErrNonNegative, "total price must be non-negative", nil, true},
		ConstraintSpec{ConstraintOrderItemTotalMatches, "order_items", "total_price", ErrStructural, "total price must equal price * quantity", nil, true},
		ConstraintSpec{ConstraintOrderItemReservationKey, "order_items", "reservation_code", ErrUniqueness, "reservation code already exists", nil, true},

		ConstraintSpec{ConstraintStaffTimesUserKey, "staff_times", "user_id", ErrUniqueness, "working hours for this staff member already exist", nil, true},
		ConstraintSpec{ConstraintStaffTimesNotEmpty, "staff_times", "working_hours", ErrStructural, "at least one day must be specified in working_hours", nil, true},
		ConstraintSpec{ConstraintStaffTimesDaysHaveBounds, "staff_times", "working_hours", ErrStructural, "every day in working_hours must contain start and end", nil, true},
		// Проверка is_staff требует данных UserService, поэтому выполняется только в приложении
		ConstraintSpec{ConstraintStaffTimesUserIsStaff, "staff_times", "user", ErrStructural, "user must be a staff member", nil, false},

		ConstraintSpec{ConstraintEventReasonNotEmpty, "events", "reason", ErrStructural, "reason must not be empty", nil, true},
		ConstraintSpec{ConstraintEventOffDateInFuture, "events", "off_date", ErrPastStart, "off date must be greater than today", nil, true},

		ConstraintSpec{ConstraintCouponCodeKey, "coupons", "code", ErrUniqueness, "a coupon with this code already exists", nil, true},
		ConstraintSpec{ConstraintCouponStartBeforeExpire, "coupons", "start_date", ErrOrdering, "start date must be before expire date", nil, true},
		ConstraintSpec{ConstraintCouponDiscountInRange, "coupons", "discount_percentage", ErrNonNegative, "discount percentage must be between 0 and 100", nil, true},
		ConstraintSpec{ConstraintCouponUsableCountNonNeg, "coupons", "usable_count", ErrNonNegative, "usable count must be non-negative", nil, true},
	)
}

// LookupConstraint ищет ограничение по имени
func LookupConstraint(name string) (ConstraintSpec, bool) {
	s, ok := constraintSpecs[name]
	return s, ok
}

// MustConstraint возвращает ограничение по имени, паникует если его нет
// Используется только с константами из этого файла
func MustConstraint(name string) ConstraintSpec {
	s, ok := constraintSpecs[name]
	if !ok {
		panic("domain: unknown constraint " + name)
	}
	return s
}

// Violation возвращает ошибку нарушения ограничения с указанным именем
func Violation(name string) *ValidationError {
	return MustConstraint(name).Violation()
}

// ConstraintSpecs возвращает все ограничения, отсортированные по имени
func ConstraintSpecs() []ConstraintSpec {
	specs := make([]ConstraintSpec, 0, len(constraintSpecs))
	for _, s := range constraintSpecs {
		specs = append(specs, s)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}
