package domain

// PaymentStatus статус оплаты бронирования или заказа
type PaymentStatus string

const (
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
	PaymentPending  PaymentStatus = "pending"
)

// Presentation формат оказания услуги
type Presentation string

const (
	PresentationInPerson Presentation = "in_person"
	PresentationOnline   Presentation = "online"
	PresentationHybrid   Presentation = "hybrid"
)

// Ключи документа расписания (working_hours / excluded_times)
const (
	ScheduleWeekdays = "weekdays"
	ScheduleWeekends = "weekends"
	ScheduleStart    = "start"
	ScheduleEnd      = "end"
)

// Business validation constants
const (
	MinDiscountPercentage = 0
	MaxDiscountPercentage = 100
	MinOrderItemQuantity  = 1
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultPaymentStatus статус оплаты новой брони
const DefaultPaymentStatus = PaymentPending

// PaymentStatuses допустимые статусы оплаты
var PaymentStatuses = []PaymentStatus{
	PaymentApproved,
	PaymentRejected,
	PaymentPending,
}

// Presentations допустимые форматы услуги
var Presentations = []Presentation{
	PresentationInPerson,
	PresentationOnline,
	PresentationHybrid,
}

// IsValid проверяет, что статус входит в допустимое множество
func (s PaymentStatus) IsValid() bool {
	for _, v := range PaymentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsValid проверяет, что формат входит в допустимое множество
func (p Presentation) IsValid() bool {
	for _, v := range Presentations {
		if p == v {
			return true
		}
	}
	return false
}

// PaymentStatusValues строковые значения статусов оплаты
func PaymentStatusValues() []string {
	out := make([]string, len(PaymentStatuses))
	for i, s := range PaymentStatuses {
		out[i] = string(s)
	}
	return out
}

// PresentationValues строковые значения форматов услуги
func PresentationValues() []string {
	out := make([]string, len(Presentations))
	for i, p := range Presentations {
		out[i] = string(p)
	}
	return out
}
