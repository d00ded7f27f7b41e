package core

import (
	"errors"
	"regexp"
	"time"
)

var (
	ErrInvalidDate    = errors.New("invalid entry date")
	ErrNegativeAmount = errors.New("negative amount")
)

// monthNames is indexed by month-1; EntryMonth derivation never uses any
// other source.
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type (
	// Date is a calendar day without time-of-day. The zero value is invalid.
	Date struct {
		time.Time
	}

	// Amounts groups the six monetary fields of a daily entry. Absent
	// fields default to zero.
	Amounts struct {
		PetrolCost      Money
		CashOnDelivery  Money
		CashDeposit     Money
		OtherCash       Money
		DailyWithdrawal Money
		TotalEarnings   Money
	}

	// Entry is one daily earnings record. Entries are write-once: built
	// through NewEntry, persisted, never mutated or deleted. EntryMonth and
	// EntryYear always agree with EntryDate.
	Entry struct {
		ID              int64     `json:"id"`
		EntryDate       Date      `json:"entryDate"`
		EntryMonth      string    `json:"entryMonth"`
		EntryYear       int       `json:"entryYear"`
		PetrolCost      Money     `json:"petrolCost"`
		CashOnDelivery  Money     `json:"cashOnDelivery"`
		CashDeposit     Money     `json:"cashDeposit"`
		OtherCash       Money     `json:"otherCash"`
		OtherType       string    `json:"otherType,omitempty"`
		TotalEarnings   Money     `json:"totalEarnings"`
		DailyWithdrawal Money     `json:"dailyWithDrawAmount"`
		CreatedAt       time.Time `json:"created_at"`
	}
)

// ParseDate parses an ISO YYYY-MM-DD string into a Date. The string must
// match the literal pattern and denote a real calendar day (2026-02-30 and
// 2026-13-01 are both rejected).
func ParseDate(s string) (Date, error) {
	if !isoDatePattern.MatchString(s) {
		return Date{}, ErrInvalidDate
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate builds a Date from components.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ISO returns the date in YYYY-MM-DD form.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// Month returns the month number, 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year component.
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.ISO() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// NewEntry is the sole constructor for entries. EntryMonth and EntryYear are
// derived from the date; callers cannot set them independently. Returns
// ErrInvalidDate for the zero date, which ParseDate never produces.
func NewEntry(date Date, amounts Amounts, otherType string) (Entry, error) {
	if date.IsZero() {
		return Entry{}, ErrInvalidDate
	}
	month := date.Month()
	for _, m := range []Money{
		amounts.PetrolCost, amounts.CashOnDelivery, amounts.CashDeposit,
		amounts.OtherCash, amounts.DailyWithdrawal, amounts.TotalEarnings,
	} {
		if m.Cents < 0 {
			return Entry{}, ErrNegativeAmount
		}
	}
	return Entry{
		EntryDate:       date,
		EntryMonth:      monthNames[month-1],
		EntryYear:       date.Year(),
		PetrolCost:      amounts.PetrolCost,
		CashOnDelivery:  amounts.CashOnDelivery,
		CashDeposit:     amounts.CashDeposit,
		OtherCash:       amounts.OtherCash,
		OtherType:       otherType,
		TotalEarnings:   amounts.TotalEarnings,
		DailyWithdrawal: amounts.DailyWithdrawal,
	}, nil
}

// MonthName returns the English name for a month number, or "" when the
// number is out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}
