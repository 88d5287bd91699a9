package benefit

import (
	"errors"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	valid := &PartnerBenefit{Partner: "LabVerde", Title: "20% off panels", ValidFrom: time.Now()}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	noTitle := &PartnerBenefit{Partner: "LabVerde"}
	if err := noTitle.Validate(); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}

	noPartner := &PartnerBenefit{Title: "20% off"}
	if err := noPartner.Validate(); !errors.Is(err, ErrPartnerRequired) {
		t.Errorf("expected ErrPartnerRequired, got %v", err)
	}
}

func TestValidateWindow(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	before := from.Add(-time.Hour)

	b := &PartnerBenefit{Partner: "p", Title: "t", ValidFrom: from, ValidUntil: &before}
	if err := b.Validate(); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}

	same := from
	b.ValidUntil = &same
	if err := b.Validate(); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod for equal bounds, got %v", err)
	}
}

func TestCurrentlyValid(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	b := &PartnerBenefit{Partner: "p", Title: "t", ValidFrom: from, ValidUntil: &until, IsActive: true}

	if !b.CurrentlyValid(from.AddDate(0, 6, 0)) {
		t.Error("expected valid inside window")
	}
	if b.CurrentlyValid(from.Add(-time.Hour)) {
		t.Error("expected invalid before window")
	}
	if b.CurrentlyValid(until.Add(time.Hour)) {
		t.Error("expected invalid after window")
	}

	b.IsActive = false
	if b.CurrentlyValid(from.AddDate(0, 6, 0)) {
		t.Error("expected invalid when inactive")
	}

	// Open-ended window stays valid.
	open := &PartnerBenefit{Partner: "p", Title: "t", ValidFrom: from, IsActive: true}
	if !open.CurrentlyValid(from.AddDate(10, 0, 0)) {
		t.Error("expected open-ended benefit valid far in the future")
	}
}

func TestStatusValue(t *testing.T) {
	b := &PartnerBenefit{IsActive: true}
	if b.StatusValue() != "active" {
		t.Errorf("expected active, got %q", b.StatusValue())
	}
	b.IsActive = false
	if b.StatusValue() != "inactive" {
		t.Errorf("expected inactive, got %q", b.StatusValue())
	}
}
