package coa

import "testing"

func TestLevelOf(t *testing.T) {
	cases := []struct {
		code string
		want int
	}{
		{"1", 1},
		{"1.1", 2},
		{"1.1.1", 3},
		{"1.1.1.001", 4},
		{"5.1.1.002", 4},
	}
	for _, tc := range cases {
		if got := LevelOf(tc.code); got != tc.want {
			t.Errorf("LevelOf(%q) = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestParentCode(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"1", ""},
		{"1.1", "1"},
		{"1.1.1.001", "1.1.1"},
	}
	for _, tc := range cases {
		if got := ParentCode(tc.code); got != tc.want {
			t.Errorf("ParentCode(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestValidateCode(t *testing.T) {
	valid := []string{"1", "1.1", "4.1.1.001"}
	for _, code := range valid {
		if err := ValidateCode(code); err != nil {
			t.Errorf("ValidateCode(%q) = %v, want nil", code, err)
		}
	}
	invalid := []string{"", ".", "1.", ".1", "1..1"}
	for _, code := range invalid {
		if err := ValidateCode(code); err == nil {
			t.Errorf("ValidateCode(%q) = nil, want error", code)
		}
	}
}
