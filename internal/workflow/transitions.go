package workflow

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a target status is not reachable from
// the entity's current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrUnknownStatus is returned when the target status is not in the kind's
// vocabulary at all.
var ErrUnknownStatus = errors.New("unknown status")

// transitions lists, per kind, the statuses reachable from each status.
// A status absent from the map (or mapped to an empty set) is terminal.
var transitions = map[Kind]map[string][]string{
	KindTicket: {
		TicketNovo:               {TicketEmAnalise, TicketCancelado},
		TicketEmAnalise:          {TicketEmDesenvolvimento, TicketAguardandoResposta, TicketCancelado},
		TicketEmDesenvolvimento:  {TicketAguardandoResposta, TicketResolvido, TicketCancelado},
		TicketAguardandoResposta: {TicketEmDesenvolvimento, TicketResolvido, TicketFechado, TicketCancelado},
		TicketResolvido:          {TicketFechado},
	},
	KindPrescription: {
		PrescriptionPending: {PrescriptionApproved, PrescriptionRejected},
	},
	KindOrder: {
		OrderPending:          {OrderAwaitingPayment, OrderCanceled},
		OrderAwaitingPayment:  {OrderPaymentConfirmed, OrderCanceled},
		OrderPaymentConfirmed: {OrderProcessing, OrderCanceled, OrderRefunded},
		OrderProcessing:       {OrderShipped, OrderCanceled, OrderRefunded},
		OrderShipped:          {OrderDelivered},
		OrderDelivered:        {OrderRefunded},
	},
	KindSample: {
		SampleRegistered:      {SampleCollected, SampleRejected},
		SampleCollected:       {SampleReceived, SampleRejected},
		SampleReceived:        {SampleInProgress, SampleRejected},
		SampleInProgress:      {SamplePendingApproval, SampleRejected},
		SamplePendingApproval: {SampleCompleted, SampleRejected},
		SampleCompleted:       {SampleArchived},
		SampleRejected:        {SampleArchived},
	},
	KindPayment: {
		PaymentPending:   {PaymentConfirmed, PaymentOverdue},
		PaymentOverdue:   {PaymentConfirmed},
		PaymentConfirmed: {PaymentRefunded},
	},
}

// CanTransition reports whether from -> to is an allowed transition for kind.
func CanTransition(kind Kind, from, to string) bool {
	for _, next := range transitions[kind][from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a status has no outgoing transitions.
func Terminal(kind Kind, status string) bool {
	return len(transitions[kind][status]) == 0
}

// Guard validates a transition, returning a typed error suitable for mapping
// to an HTTP status. The target must be a known value and reachable from the
// current status.
func Guard(kind Kind, from, to string) error {
	if !Known(kind, to) {
		return fmt.Errorf("%w: %s %q", ErrUnknownStatus, kind, to)
	}
	if !CanTransition(kind, from, to) {
		return fmt.Errorf("%w: %s %q -> %q", ErrInvalidTransition, kind, from, to)
	}
	return nil
}
