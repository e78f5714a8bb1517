package payroll

import "fmt"

// TimeCard records the hours an hourly employee worked on one day.
// Hours up to the standard day are regular; the rest is overtime.
type TimeCard struct {
	date      Date
	workHours int
}

// NewTimeCard rejects a missing date or negative hours.
func NewTimeCard(date Date, workHours int) (TimeCard, error) {
	if date.IsZero() {
		return TimeCard{}, &RecordError{Reason: "time card without date", Err: ErrInvalidRecord}
	}
	if workHours < 0 {
		return TimeCard{}, &RecordError{
			Date:   date,
			Reason: fmt.Sprintf("negative work hours %d", workHours),
			Err:    ErrInvalidRecord,
		}
	}
	return TimeCard{date: date, workHours: workHours}, nil
}

func (tc TimeCard) Date() Date     { return tc.date }
func (tc TimeCard) WorkHours() int { return tc.workHours }

// RegularWorkHours is min(WorkHours, 8).
func (tc TimeCard) RegularWorkHours() int {
	regular, _ := tc.SplitHours(DefaultStandardDayHours)
	return regular
}

// OvertimeWorkHours is max(WorkHours-8, 0).
func (tc TimeCard) OvertimeWorkHours() int {
	_, overtime := tc.SplitHours(DefaultStandardDayHours)
	return overtime
}

func (tc TimeCard) IsOvertime() bool {
	return tc.OvertimeWorkHours() > 0
}

// SplitHours splits the worked hours at the given standard day length.
func (tc TimeCard) SplitHours(standardDayHours int) (regular, overtime int) {
	if tc.workHours <= standardDayHours {
		return tc.workHours, 0
	}
	return standardDayHours, tc.workHours - standardDayHours
}
