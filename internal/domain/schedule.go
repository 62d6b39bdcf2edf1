package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"sort"

	"gorm.io/datatypes"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ErrInvalidWindow возвращается, если границы окна расписания не разбираются как HH:MM
var ErrInvalidWindow = errors.New("invalid schedule window")

// Schedule JSON-документ расписания: {"weekdays": {"start": "09:00", "end": "18:00"}, ...}
// Хранится в колонке jsonb, значения start/end не интерпретируются при проверке структуры
type Schedule datatypes.JSONMap

// Value implements driver.Valuer
func (s Schedule) Value() (driver.Value, error) {
	return datatypes.JSONMap(s).Value()
}

// Scan implements sql.Scanner
func (s *Schedule) Scan(value interface{}) error {
	m := datatypes.JSONMap{}
	if err := m.Scan(value); err != nil {
		return err
	}
	*s = Schedule(m)
	return nil
}

// Days returns the day keys of the schedule in sorted order
func (s Schedule) Days() []string {
	days := make([]string, 0, len(s))
	for k := range s {
		days = append(days, k)
	}
	sort.Strings(days)
	return days
}

// Has reports whether the schedule defines the given day key
func (s Schedule) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// MissingKey возвращает путь первого отсутствующего ключа дня key ("weekdays", "weekdays.start", ...)
// Пустая строка - день присутствует и содержит start и end
func (s Schedule) MissingKey(key string) string {
	raw, ok := s[key]
	if !ok {
		return key
	}
	day, ok := asObject(raw)
	if !ok {
		return key
	}
	for _, bound := range []string{ScheduleStart, ScheduleEnd} {
		if _, ok := day[bound]; !ok {
			return key + "." + bound
		}
	}
	return ""
}

// Window разбирает окно дня key
// ok == false, если ключа нет в документе
func (s Schedule) Window(key string) (Window, bool, error) {
	raw, ok := s[key]
	if !ok {
		return Window{}, false, nil
	}
	day, ok := asObject(raw)
	if !ok {
		return Window{}, true, fmt.Errorf("%w: %s is not an object", ErrInvalidWindow, key)
	}

	start, err := parseBound(day, key, ScheduleStart)
	if err != nil {
		return Window{}, true, err
	}
	end, err := parseBound(day, key, ScheduleEnd)
	if err != nil {
		return Window{}, true, err
	}

	return Window{Start: start, End: end}, true, nil
}

// Window промежуток времени суток в минутах от полуночи, полуинтервал [Start, End)
type Window struct {
	Start int
	End   int
}

// Contains проверяет, что [start, end) целиком лежит внутри окна
func (w Window) Contains(start, end int) bool {
	return start >= w.Start && end <= w.End
}

// Overlaps проверяет пересечение [start, end) с окном, касание границ не считается
func (w Window) Overlaps(start, end int) bool {
	return start < w.End && w.Start < end
}

func parseBound(day map[string]interface{}, key, bound string) (int, error) {
	raw, ok := day[bound]
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s is missing", ErrInvalidWindow, key, bound)
	}
	str, ok := raw.(string)
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s is not a string", ErrInvalidWindow, key, bound)
	}
	minutes, err := types.TimeString(str).Minutes()
	if err != nil {
		return 0, fmt.Errorf("%w: %s.%s: %v", ErrInvalidWindow, key, bound, err)
	}
	return minutes, nil
}

func asObject(v interface{}) (map[string]interface{}, bool) {
	switch obj := v.(type) {
	case map[string]interface{}:
		return obj, true
	case Schedule:
		return obj, true
	case datatypes.JSONMap:
		return obj, true
	case map[string]string:
		out := make(map[string]interface{}, len(obj))
		for k, val := range obj {
			out[k] = val
		}
		return out, true
	default:
		return nil, false
	}
}
