package core

import "testing"

func TestMoney_String(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{50, "0.50"},
		{1234, "12.34"},
		{50000, "500.00"},
		{-1234, "-12.34"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := (Money{Cents: tt.cents}).String(); got != tt.want {
				t.Errorf("Money{%d}.String() = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}

func TestMoney_MarshalJSON(t *testing.T) {
	b, err := Money{Cents: 1234}.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(b) != "12.34" {
		t.Errorf("MarshalJSON = %s, want 12.34", b)
	}
}

func TestMoney_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"12.34", 1234},
		{"0", 0},
		{"500.00", 50000},
		{"12.3", 1230},
		{"-12.34", -1234},
		{`"12.34"`, 1234},
		// large enough that a float64 intermediate would lose cents
		{"92233720368547.75", 9223372036854775},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var m Money
			if err := m.UnmarshalJSON([]byte(tt.input)); err != nil {
				t.Fatalf("UnmarshalJSON(%q): %v", tt.input, err)
			}
			if m.Cents != tt.want {
				t.Errorf("Cents = %d, want %d", m.Cents, tt.want)
			}
		})
	}

	for _, input := range []string{"abc", "12.345", "12.", "1-2"} {
		var m Money
		if err := m.UnmarshalJSON([]byte(input)); err == nil {
			t.Errorf("UnmarshalJSON(%q) = nil, want error", input)
		}
	}
}
