package validator

import "testing"

func TestClockTimeTag(t *testing.T) {
	val := New()

	valid := []string{"00:00", "09:30", "23:05", "12:59"}
	for _, in := range valid {
		if err := val.Var(in, "clocktime"); err != nil {
			t.Errorf("clocktime rejected %q: %v", in, err)
		}
	}

	invalid := []string{"24:00", "9:30", "09:60", "0930", "09:30:00", ""}
	for _, in := range invalid {
		if err := val.Var(in, "clocktime"); err == nil {
			t.Errorf("clocktime accepted %q", in)
		}
	}
}

func TestMobileTag(t *testing.T) {
	val := New()

	valid := []string{"9876543210", "+919876543210", "98765 43210"}
	for _, in := range valid {
		if err := val.Var(in, "mobile"); err != nil {
			t.Errorf("mobile rejected %q: %v", in, err)
		}
	}

	invalid := []string{"12345", "not-a-number", ""}
	for _, in := range invalid {
		if err := val.Var(in, "mobile"); err == nil {
			t.Errorf("mobile accepted %q", in)
		}
	}
}

func TestStructValidation(t *testing.T) {
	val := New()

	type window struct {
		Start string `validate:"required,clocktime"`
		End   string `validate:"required,clocktime"`
	}

	if err := val.Struct(window{Start: "09:00", End: "11:00"}); err != nil {
		t.Fatalf("valid window rejected: %v", err)
	}
	if err := val.Struct(window{Start: "09:00", End: "25:00"}); err == nil {
		t.Fatal("invalid end time accepted")
	}
	if err := val.Struct(window{End: "11:00"}); err == nil {
		t.Fatal("missing start accepted")
	}
}
