package validation

import (
	"errors"
	"testing"
)

func TestValidYear(t *testing.T) {
	tests := []struct {
		year string
		want bool
	}{
		{"1999", true},
		{"2001", true},
		{"1900", true},
		{"9999", true},
		{"unknown", true},
		{"UNKNOWN", true},
		{"Unknown", true},
		{"1899", false},
		{"0999", false},
		{"99", false},
		{"20011", false},
		{"", false},
		{"unknown year", false},
	}

	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			if got := ValidYear(tt.year); got != tt.want {
				t.Errorf("ValidYear(%q) = %v, want %v", tt.year, got, tt.want)
			}
		})
	}
}

type draft struct {
	Title string `validate:"required"`
	Year  string `validate:"omitempty,releaseyear"`
}

func TestStruct(t *testing.T) {
	if err := Struct(draft{Title: "Brazil", Year: "1985"}); err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}
	if err := Struct(draft{Title: "Brazil"}); err != nil {
		t.Fatalf("absent year must be accepted, got %v", err)
	}

	err := Struct(draft{Year: "1899"})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", verr.Fields)
	}
	if verr.Fields[1].Field != "year" || verr.Fields[1].Tag != TagReleaseYear {
		t.Errorf("unexpected year error %+v", verr.Fields[1])
	}
}
