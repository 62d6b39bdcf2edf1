package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_MissingKey(t *testing.T) {
	s := Schedule{
		"weekdays": map[string]interface{}{"start": "09:00", "end": "18:00"},
		"weekends": map[string]interface{}{"start": "10:00"},
		"holiday":  "closed",
	}

	assert.Equal(t, "", s.MissingKey(ScheduleWeekdays))
	assert.Equal(t, "weekends.end", s.MissingKey(ScheduleWeekends))
	assert.Equal(t, "holiday", s.MissingKey("holiday"))
	assert.Equal(t, "friday", s.MissingKey("friday"))
}

func TestSchedule_Window(t *testing.T) {
	s := Schedule{
		"weekdays": map[string]interface{}{"start": "09:30", "end": "24:00"},
		"weekends": map[string]interface{}{"start": "9am", "end": "18:00"},
	}

	w, ok, err := s.Window(ScheduleWeekdays)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Window{Start: 570, End: 1440}, w)

	_, ok, err = s.Window(ScheduleWeekends)
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, ok, err = s.Window("sunday")
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestSchedule_ScanValueRoundTrip(t *testing.T) {
	var s Schedule
	require.NoError(t, s.Scan([]byte(`{"weekdays":{"start":"08:00","end":"12:00"}}`)))
	assert.Equal(t, []string{"weekdays"}, s.Days())

	v, err := s.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"weekdays":{"start":"08:00","end":"12:00"}}`, fmt.Sprintf("%s", v))
}

func TestWindow_ContainsAndOverlaps(t *testing.T) {
	w := Window{Start: 540, End: 1080}

	assert.True(t, w.Contains(540, 1080))
	assert.False(t, w.Contains(530, 600))
	assert.True(t, w.Overlaps(1000, 1100))
	assert.False(t, w.Overlaps(1080, 1100))
}

func TestBranch_Check(t *testing.T) {
	valid := func() *Branch {
		return &Branch{
			City:          "Almaty",
			WorkingHours:  Schedule{"weekdays": map[string]interface{}{"start": "09:00", "end": "18:00"}},
			ExcludedTimes: Schedule{"weekdays": map[string]interface{}{"start": "13:00", "end": "14:00"}},
		}
	}

	assert.NoError(t, valid().Check())

	noCity := valid()
	noCity.City = "  "
	assert.ErrorIs(t, noCity.Check(), ErrStructural)

	halfWeekend := valid()
	halfWeekend.WorkingHours["weekends"] = map[string]interface{}{"start": "10:00"}
	err := halfWeekend.Check()
	vErr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, ConstraintBranchWorkingHoursWeekends, vErr.Constraint)

	noExcluded := valid()
	noExcluded.ExcludedTimes = Schedule{}
	vErr, ok = AsValidationError(noExcluded.Check())
	require.True(t, ok)
	assert.Equal(t, ConstraintBranchExcludedWeekdays, vErr.Constraint)
}

func TestBranch_WorkingWindowFallsBackToWeekdays(t *testing.T) {
	b := &Branch{WorkingHours: Schedule{"weekdays": map[string]interface{}{"start": "09:00", "end": "18:00"}}}

	w, err := b.WorkingWindow(true)
	require.NoError(t, err)
	assert.Equal(t, Window{Start: 540, End: 1080}, w)
}
