package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "2026-02-01"},
		{name: "leap day", input: "2024-02-29"},
		{name: "invalid month", input: "2026-13-01", wantErr: true},
		{name: "impossible day", input: "2026-02-30", wantErr: true},
		{name: "non-leap february 29", input: "2026-02-29", wantErr: true},
		{name: "missing padding", input: "2026-2-1", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "not-a-date", wantErr: true},
		{name: "trailing text", input: "2026-02-01x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("ParseDate(%q) error = %v, want ErrInvalidDate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.input, err)
			}
			if got := d.ISO(); got != tt.input {
				t.Errorf("ISO() = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestNewEntry_MonthYearDerivation(t *testing.T) {
	tests := []struct {
		date      string
		wantMonth string
		wantYear  int
	}{
		{"2026-01-15", "January", 2026},
		{"2026-02-01", "February", 2026},
		{"2026-03-31", "March", 2026},
		{"2026-04-10", "April", 2026},
		{"2026-05-05", "May", 2026},
		{"2026-06-30", "June", 2026},
		{"2026-07-04", "July", 2026},
		{"2026-08-19", "August", 2026},
		{"2026-09-01", "September", 2026},
		{"2026-10-31", "October", 2026},
		{"2026-11-11", "November", 2026},
		{"2025-12-25", "December", 2025},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := ParseDate(tt.date)
			if err != nil {
				t.Fatalf("ParseDate: %v", err)
			}
			e, err := NewEntry(d, Amounts{}, "")
			if err != nil {
				t.Fatalf("NewEntry: %v", err)
			}
			if e.EntryMonth != tt.wantMonth {
				t.Errorf("EntryMonth = %q, want %q", e.EntryMonth, tt.wantMonth)
			}
			if e.EntryYear != tt.wantYear {
				t.Errorf("EntryYear = %d, want %d", e.EntryYear, tt.wantYear)
			}
		})
	}
}

func TestNewEntry_ZeroDefaults(t *testing.T) {
	d, _ := ParseDate("2026-06-15")
	e, err := NewEntry(d, Amounts{}, "")
	if err != nil {
		t.Fatalf("NewEntry: %v", err)
	}
	for name, m := range map[string]Money{
		"petrolCost":      e.PetrolCost,
		"cashOnDelivery":  e.CashOnDelivery,
		"cashDeposit":     e.CashDeposit,
		"otherCash":       e.OtherCash,
		"dailyWithdrawal": e.DailyWithdrawal,
		"totalEarnings":   e.TotalEarnings,
	} {
		if m.Cents != 0 {
			t.Errorf("%s = %d cents, want 0", name, m.Cents)
		}
	}
}

func TestNewEntry_RejectsNegativeAmounts(t *testing.T) {
	d, _ := ParseDate("2026-06-15")
	_, err := NewEntry(d, Amounts{PetrolCost: Money{Cents: -500}}, "")
	if !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("NewEntry error = %v, want ErrNegativeAmount", err)
	}
}

func TestNewEntry_RejectsZeroDate(t *testing.T) {
	_, err := NewEntry(Date{}, Amounts{}, "")
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("NewEntry error = %v, want ErrInvalidDate", err)
	}
}

func TestEntry_JSONShape(t *testing.T) {
	d, _ := ParseDate("2026-02-01")
	e, err := NewEntry(d, Amounts{PetrolCost: Money{Cents: 1234}, TotalEarnings: Money{Cents: 50000}}, "Toll")
	if err != nil {
		t.Fatalf("NewEntry: %v", err)
	}
	e.ID = 7

	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got["entryDate"] != "2026-02-01" {
		t.Errorf("entryDate = %v, want 2026-02-01", got["entryDate"])
	}
	if got["entryMonth"] != "February" {
		t.Errorf("entryMonth = %v, want February", got["entryMonth"])
	}
	if got["entryYear"] != float64(2026) {
		t.Errorf("entryYear = %v, want 2026", got["entryYear"])
	}
	if got["petrolCost"] != 12.34 {
		t.Errorf("petrolCost = %v, want 12.34", got["petrolCost"])
	}
	if got["totalEarnings"] != float64(500) {
		t.Errorf("totalEarnings = %v, want 500", got["totalEarnings"])
	}
	if got["otherType"] != "Toll" {
		t.Errorf("otherType = %v, want Toll", got["otherType"])
	}
}

func TestEntry_OmitsEmptyOtherType(t *testing.T) {
	d, _ := ParseDate("2026-02-01")
	e, _ := NewEntry(d, Amounts{}, "")

	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, present := got["otherType"]; present {
		t.Error("otherType should be absent when empty")
	}
}

func TestMonthName(t *testing.T) {
	if got := MonthName(1); got != "January" {
		t.Errorf("MonthName(1) = %q", got)
	}
	if got := MonthName(12); got != "December" {
		t.Errorf("MonthName(12) = %q", got)
	}
	if got := MonthName(0); got != "" {
		t.Errorf("MonthName(0) = %q, want empty", got)
	}
	if got := MonthName(13); got != "" {
		t.Errorf("MonthName(13) = %q, want empty", got)
	}
}
