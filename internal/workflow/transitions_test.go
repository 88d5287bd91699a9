package workflow

import (
	"errors"
	"testing"
)

func TestTicketTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{TicketNovo, TicketEmAnalise, true},
		{TicketNovo, TicketCancelado, true},
		{TicketNovo, TicketResolvido, false},
		{TicketEmAnalise, TicketEmDesenvolvimento, true},
		{TicketAguardandoResposta, TicketEmDesenvolvimento, true},
		{TicketResolvido, TicketFechado, true},
		{TicketResolvido, TicketNovo, false},
		{TicketFechado, TicketNovo, false},
		{TicketCancelado, TicketEmAnalise, false},
	}
	for _, c := range cases {
		if got := CanTransition(KindTicket, c.from, c.to); got != c.ok {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestPrescriptionReviewIsTerminal(t *testing.T) {
	if !CanTransition(KindPrescription, PrescriptionPending, PrescriptionApproved) {
		t.Error("pending -> approved should be allowed")
	}
	if !CanTransition(KindPrescription, PrescriptionPending, PrescriptionRejected) {
		t.Error("pending -> rejected should be allowed")
	}
	if CanTransition(KindPrescription, PrescriptionApproved, PrescriptionPending) {
		t.Error("approved must be terminal")
	}
	if !Terminal(KindPrescription, PrescriptionRejected) {
		t.Error("rejected must be terminal")
	}
}

func TestOrderSideExits(t *testing.T) {
	if !CanTransition(KindOrder, OrderProcessing, OrderCanceled) {
		t.Error("processing -> canceled should be allowed")
	}
	if CanTransition(KindOrder, OrderShipped, OrderCanceled) {
		t.Error("shipped orders cannot be canceled")
	}
	if !CanTransition(KindOrder, OrderDelivered, OrderRefunded) {
		t.Error("delivered -> refunded should be allowed")
	}
}

func TestSampleLifecycle(t *testing.T) {
	path := []string{
		SampleRegistered, SampleCollected, SampleReceived,
		SampleInProgress, SamplePendingApproval, SampleCompleted, SampleArchived,
	}
	for i := 0; i < len(path)-1; i++ {
		if !CanTransition(KindSample, path[i], path[i+1]) {
			t.Errorf("%s -> %s should be allowed", path[i], path[i+1])
		}
	}
	if !Terminal(KindSample, SampleArchived) {
		t.Error("archived must be terminal")
	}
	for _, s := range []string{SampleRegistered, SampleCollected, SampleReceived, SampleInProgress, SamplePendingApproval} {
		if !CanTransition(KindSample, s, SampleRejected) {
			t.Errorf("%s -> rejected should be allowed", s)
		}
	}
}

func TestGuardErrors(t *testing.T) {
	if err := Guard(KindTicket, TicketNovo, TicketEmAnalise); err != nil {
		t.Fatalf("valid transition rejected: %v", err)
	}

	err := Guard(KindTicket, TicketNovo, "arquivado")
	if !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}

	err = Guard(KindTicket, TicketFechado, TicketNovo)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestEveryTransitionTargetIsRegistered(t *testing.T) {
	for kind, table := range transitions {
		for from, targets := range table {
			if !Known(kind, from) {
				t.Errorf("%s: source %q not in registry", kind, from)
			}
			for _, to := range targets {
				if !Known(kind, to) {
					t.Errorf("%s: target %q not in registry", kind, to)
				}
			}
		}
	}
}
