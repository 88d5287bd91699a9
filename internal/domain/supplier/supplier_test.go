package supplier

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	s := &Supplier{Name: "Fazenda Boa Vista"}
	if err := s.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	for _, name := range []string{"", "   "} {
		s := &Supplier{Name: name}
		if err := s.Validate(); !errors.Is(err, ErrNameRequired) {
			t.Errorf("name %q: expected ErrNameRequired, got %v", name, err)
		}
	}
}

func TestStatusValue(t *testing.T) {
	s := &Supplier{IsActive: true}
	if s.StatusValue() != "active" {
		t.Errorf("expected active, got %q", s.StatusValue())
	}
	s.IsActive = false
	if s.StatusValue() != "inactive" {
		t.Errorf("expected inactive, got %q", s.StatusValue())
	}
}
