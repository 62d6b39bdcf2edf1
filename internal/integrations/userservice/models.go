package userservice

// StaffMember модель сотрудника из UserService
type StaffMember struct {
	ID        int64  `json:"id"`
	IsStaff   bool   `json:"is_staff"`
	CompanyID *int64 `json:"company_id"` // компания, в которой работает сотрудник
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
