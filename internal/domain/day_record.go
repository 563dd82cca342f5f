package domain

// DayRecord is one employee's shifts and orders for one calendar date.
// Date is ISO YYYY-MM-DD; shift times are HH:MM or empty when unset.
type DayRecord struct {
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	Employee    Employee `json:"employee" validate:"required,employee"`
	Shift1Start string   `json:"shift1Start" validate:"omitempty,clock"`
	Shift1End   string   `json:"shift1End" validate:"omitempty,clock"`
	HasShift2   bool     `json:"hasShift2"`
	Shift2Start string   `json:"shift2Start" validate:"omitempty,clock"`
	Shift2End   string   `json:"shift2End" validate:"omitempty,clock"`
	Orders      int      `json:"orders" validate:"min=0"`
	// Bonus is paid per order on top of the base order rate and is shared
	// by every employee working on Date.
	Bonus float64 `json:"bonus" validate:"min=0"`
}

// RecordKey is the unique key of a DayRecord within a month.
type RecordKey struct {
	Date     string
	Employee Employee
}

func (r DayRecord) Key() RecordKey {
	return RecordKey{Date: r.Date, Employee: r.Employee}
}

// HasData reports whether anything was entered for the record.
func (r DayRecord) HasData() bool {
	return r.Shift1Start != "" || r.Shift1End != "" || r.HasShift2 || r.Orders > 0 || r.Bonus > 0
}
