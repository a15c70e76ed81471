package validation

import (
	"errors"
	"testing"

	"github.com/yigit/campusadmit/internal/pkg/apperrors"
)

type address struct {
	Pincode string `json:"pincode" validate:"required,pincode"`
	Born    string `json:"dateOfBirth" validate:"required,isodate"`
}

type form struct {
	Name    string   `json:"name" validate:"notblank,min=2"`
	Phone   string   `json:"phone" validate:"required,phone"`
	Marks   *float64 `json:"marks" validate:"required,gte=0,lte=100"`
	Address address  `json:"address"`
}

func fields(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	out := map[string]string{}
	for _, f := range ve.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestStructReportsJSONPaths(t *testing.T) {
	marks := 120.0
	err := Struct(&form{
		Name:    "A",
		Phone:   "12345",
		Marks:   &marks,
		Address: address{Pincode: "1234", Born: "yesterday"},
	})

	got := fields(t, err)
	want := map[string]string{
		"name":                "must be at least 2 characters",
		"phone":               "must be a valid 10-digit phone number",
		"marks":               "must be less than or equal to 100",
		"address.pincode":     "must be a valid 6-digit pincode",
		"address.dateOfBirth": "must be a valid ISO-8601 date",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("%s: got %q, want %q", field, got[field], msg)
		}
	}
}

func TestStructValid(t *testing.T) {
	marks := 0.0
	err := Struct(&form{
		Name:    "Asha",
		Phone:   "9876543210",
		Marks:   &marks,
		Address: address{Pincode: "560001", Born: "2006-04-12"},
	})
	if err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
}

func TestMissingPointerIsRequired(t *testing.T) {
	err := Struct(&form{Name: "Asha", Phone: "9876543210", Address: address{Pincode: "560001", Born: "2006-04-12"}})
	if got := fields(t, err)["marks"]; got != "is required" {
		t.Fatalf("marks: got %q", got)
	}
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2006-04-12", "2006-04-12T00:00:00Z", "2006-04-12T10:30:00.123+05:30"} {
		if _, err := ParseDate(in); err != nil {
			t.Errorf("ParseDate(%q): %v", in, err)
		}
	}
	if _, err := ParseDate("12/04/2006"); err == nil {
		t.Error("expected error for non ISO date")
	}
}
