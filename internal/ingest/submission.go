// Package ingest validates raw submission payloads before anything touches
// storage. It normalizes the optional monetary fields, enforces the isoDate
// contract, and hands the storage path a fully built entry.
package ingest

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"earnings/internal/core"
)

// ValidationError is a client-caused failure. The Reason is safe to surface
// in the HTTP response body.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Amount is a monetary field as it arrives on the wire. It accepts a JSON
// number or a numeric string; anything that fails to parse silently becomes
// zero. That permissive fallback is deliberate and matches the coerce-with-
// default behavior the clients rely on. Negative values survive parsing so
// Validate can reject them explicitly.
type Amount struct {
	dec decimal.Decimal
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		a.dec = decimal.Zero
		return nil
	}
	a.dec = d
	return nil
}

// Negative reports whether the parsed value is below zero.
func (a Amount) Negative() bool {
	return a.dec.IsNegative()
}

// Money converts the amount to fixed-point cents, rounding half-up on the
// third fraction digit.
func (a Amount) Money() core.Money {
	return core.Money{Cents: a.dec.Shift(2).Round(0).IntPart()}
}

// Submission is the raw JSON body of a create-entry request. Every monetary
// field is optional and defaults to zero. The dailyWithDrawAmount spelling is
// the wire contract the form clients already speak.
type Submission struct {
	ISODate             string `json:"isoDate"`
	PetrolCost          Amount `json:"petrolCost"`
	CashOnDelivery      Amount `json:"cashOnDelivery"`
	CashDeposit         Amount `json:"cashDeposit"`
	OtherCash           Amount `json:"otherCash"`
	OtherType           string `json:"otherType"`
	TotalEarnings       Amount `json:"totalEarnings"`
	DailyWithDrawAmount Amount `json:"dailyWithDrawAmount"`
}

// ParseSubmission decodes and validates a raw payload, returning the entry
// ready for insertion. All failures are ValidationErrors; nothing is
// persisted before this step succeeds.
func ParseSubmission(body []byte) (core.Entry, error) {
	var sub Submission
	if err := json.Unmarshal(body, &sub); err != nil {
		return core.Entry{}, &ValidationError{Reason: "Valid isoDate required"}
	}
	return sub.Entry()
}

// Entry validates the submission and builds the ledger entry from it.
func (s Submission) Entry() (core.Entry, error) {
	date, err := core.ParseDate(s.ISODate)
	if err != nil {
		return core.Entry{}, &ValidationError{Reason: "Valid isoDate required"}
	}

	for _, f := range []struct {
		name  string
		value Amount
	}{
		{"petrolCost", s.PetrolCost},
		{"cashOnDelivery", s.CashOnDelivery},
		{"cashDeposit", s.CashDeposit},
		{"otherCash", s.OtherCash},
		{"totalEarnings", s.TotalEarnings},
		{"dailyWithDrawAmount", s.DailyWithDrawAmount},
	} {
		if f.value.Negative() {
			return core.Entry{}, &ValidationError{Reason: f.name + " must not be negative"}
		}
	}

	otherType := strings.TrimSpace(s.OtherType)

	entry, err := core.NewEntry(date, core.Amounts{
		PetrolCost:      s.PetrolCost.Money(),
		CashOnDelivery:  s.CashOnDelivery.Money(),
		CashDeposit:     s.CashDeposit.Money(),
		OtherCash:       s.OtherCash.Money(),
		DailyWithdrawal: s.DailyWithDrawAmount.Money(),
		TotalEarnings:   s.TotalEarnings.Money(),
	}, otherType)
	if err != nil {
		// Unreachable after the checks above; keep the failure client-side.
		return core.Entry{}, &ValidationError{Reason: err.Error()}
	}
	return entry, nil
}
