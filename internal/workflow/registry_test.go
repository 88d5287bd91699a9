package workflow

import "testing"

func TestLookupCoversEveryStatus(t *testing.T) {
	for kind, statuses := range statusOrder {
		for _, s := range statuses {
			p := Lookup(kind, s)
			if p.Label == "" {
				t.Errorf("%s/%s: empty label", kind, s)
			}
			if p.Badge == "" {
				t.Errorf("%s/%s: empty badge", kind, s)
			}
			if p.Label == s {
				// A label equal to the raw value means we hit the fallback
				// for a status that should be registered.
				t.Errorf("%s/%s: fell back to raw value", kind, s)
			}
		}
	}
}

func TestLookupUnknownFallsBack(t *testing.T) {
	p := Lookup(KindTicket, "em_orbita")
	if p.Label != "em_orbita" {
		t.Errorf("expected raw value as label, got %q", p.Label)
	}
	if p.Badge != BadgeNeutral {
		t.Errorf("expected neutral badge, got %q", p.Badge)
	}

	// Unknown kind must not panic either.
	p = Lookup(Kind("invoice"), "pending")
	if p.Label != "pending" || p.Badge != BadgeNeutral {
		t.Errorf("unexpected fallback for unknown kind: %+v", p)
	}
}

func TestLookupTicketLabels(t *testing.T) {
	cases := map[string]string{
		TicketNovo:      "Novo",
		TicketCancelado: "Cancelado",
		TicketResolvido: "Resolvido",
	}
	for status, want := range cases {
		if got := Lookup(KindTicket, status).Label; got != want {
			t.Errorf("%s: got label %q, want %q", status, got, want)
		}
	}
}

func TestStatusesIsACopy(t *testing.T) {
	s := Statuses(KindOrder)
	if len(s) != 8 {
		t.Fatalf("expected 8 order statuses, got %d", len(s))
	}
	s[0] = "mutated"
	if Statuses(KindOrder)[0] != OrderPending {
		t.Error("Statuses returned a shared slice")
	}
}

func TestRegistryDump(t *testing.T) {
	m := Registry(KindPrescription)
	if len(m) != 3 {
		t.Fatalf("expected 3 prescription statuses, got %d", len(m))
	}
	if m[PrescriptionApproved].Badge != BadgeSuccess {
		t.Errorf("approved badge = %q", m[PrescriptionApproved].Badge)
	}
}
