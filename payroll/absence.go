package payroll

// AbsenceKind tells whether a day off is paid.
type AbsenceKind string

const (
	PaidLeave   AbsenceKind = "paid_leave"
	UnpaidLeave AbsenceKind = "unpaid_leave"
)

func (k AbsenceKind) Valid() bool { return k == PaidLeave || k == UnpaidLeave }

// Absence records one day a salaried employee did not work.
// Deductions for unpaid leave are computed by SalariedEmployee.
type Absence struct {
	date Date
	kind AbsenceKind
}

func NewAbsence(date Date, kind AbsenceKind) (Absence, error) {
	if date.IsZero() {
		return Absence{}, &RecordError{Reason: "absence without date", Err: ErrInvalidRecord}
	}
	if !kind.Valid() {
		return Absence{}, &RecordError{Date: date, Reason: "unknown absence kind " + string(kind), Err: ErrInvalidRecord}
	}
	return Absence{date: date, kind: kind}, nil
}

func (a Absence) Date() Date        { return a.date }
func (a Absence) Kind() AbsenceKind { return a.kind }
func (a Absence) IsPaidLeave() bool { return a.kind == PaidLeave }
