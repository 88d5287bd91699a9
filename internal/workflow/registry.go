// Package workflow implements the shared entity-status machinery: the status
// registry (status to label/badge presentation per entity kind), the transition
// guard tables, and the transition executor used by every mutating endpoint.
package workflow

// Kind identifies a workflow entity type.
type Kind string

const (
	KindTicket       Kind = "ticket"
	KindPrescription Kind = "prescription"
	KindOrder        Kind = "order"
	KindSample       Kind = "sample"
	KindPayment      Kind = "payment"
)

// Badge is the visual variant a client should render for a status.
type Badge string

const (
	BadgeNeutral Badge = "neutral"
	BadgeInfo    Badge = "info"
	BadgeWarning Badge = "warning"
	BadgeSuccess Badge = "success"
	BadgeDanger  Badge = "danger"
	BadgeMuted   Badge = "muted"
)

// Presentation is what a client renders for a status value.
type Presentation struct {
	Label string `json:"label"`
	Badge Badge  `json:"badge"`
}

// Ticket statuses. Labels are Portuguese, matching the platform's locale.
const (
	TicketNovo               = "novo"
	TicketEmAnalise          = "em_analise"
	TicketEmDesenvolvimento  = "em_desenvolvimento"
	TicketAguardandoResposta = "aguardando_resposta"
	TicketResolvido          = "resolvido"
	TicketFechado            = "fechado"
	TicketCancelado          = "cancelado"
)

// Prescription review statuses.
const (
	PrescriptionPending  = "pending"
	PrescriptionApproved = "approved"
	PrescriptionRejected = "rejected"
)

// Order statuses. The full set is the superset used across the platform;
// individual views filter down to what they need.
const (
	OrderPending          = "pending"
	OrderAwaitingPayment  = "awaiting_payment"
	OrderPaymentConfirmed = "payment_confirmed"
	OrderProcessing       = "processing"
	OrderShipped          = "shipped"
	OrderDelivered        = "delivered"
	OrderCanceled         = "canceled"
	OrderRefunded         = "refunded"
)

// Laboratory sample lifecycle statuses.
const (
	SampleRegistered      = "registered"
	SampleCollected       = "collected"
	SampleReceived        = "received"
	SampleInProgress      = "in_progress"
	SamplePendingApproval = "pending_approval"
	SampleCompleted       = "completed"
	SampleRejected        = "rejected"
	SampleArchived        = "archived"
)

// Payment statuses used by the financial views.
const (
	PaymentPending   = "pending"
	PaymentConfirmed = "confirmed"
	PaymentOverdue   = "overdue"
	PaymentRefunded  = "refunded"
)

// registry maps every known status value of every kind to its presentation.
// Every value used in entity data has an entry; Lookup falls back to the raw
// value with a neutral badge for anything the API sends that we don't know.
var registry = map[Kind]map[string]Presentation{
	KindTicket: {
		TicketNovo:               {Label: "Novo", Badge: BadgeInfo},
		TicketEmAnalise:          {Label: "Em Análise", Badge: BadgeWarning},
		TicketEmDesenvolvimento:  {Label: "Em Desenvolvimento", Badge: BadgeInfo},
		TicketAguardandoResposta: {Label: "Aguardando Resposta", Badge: BadgeWarning},
		TicketResolvido:          {Label: "Resolvido", Badge: BadgeSuccess},
		TicketFechado:            {Label: "Fechado", Badge: BadgeMuted},
		TicketCancelado:          {Label: "Cancelado", Badge: BadgeDanger},
	},
	KindPrescription: {
		PrescriptionPending:  {Label: "Pending Review", Badge: BadgeWarning},
		PrescriptionApproved: {Label: "Approved", Badge: BadgeSuccess},
		PrescriptionRejected: {Label: "Rejected", Badge: BadgeDanger},
	},
	KindOrder: {
		OrderPending:          {Label: "Pending", Badge: BadgeNeutral},
		OrderAwaitingPayment:  {Label: "Awaiting Payment", Badge: BadgeWarning},
		OrderPaymentConfirmed: {Label: "Payment Confirmed", Badge: BadgeInfo},
		OrderProcessing:       {Label: "Processing", Badge: BadgeInfo},
		OrderShipped:          {Label: "Shipped", Badge: BadgeInfo},
		OrderDelivered:        {Label: "Delivered", Badge: BadgeSuccess},
		OrderCanceled:         {Label: "Canceled", Badge: BadgeDanger},
		OrderRefunded:         {Label: "Refunded", Badge: BadgeMuted},
	},
	KindSample: {
		SampleRegistered:      {Label: "Registered", Badge: BadgeNeutral},
		SampleCollected:       {Label: "Collected", Badge: BadgeInfo},
		SampleReceived:        {Label: "Received", Badge: BadgeInfo},
		SampleInProgress:      {Label: "In Progress", Badge: BadgeWarning},
		SamplePendingApproval: {Label: "Pending Approval", Badge: BadgeWarning},
		SampleCompleted:       {Label: "Completed", Badge: BadgeSuccess},
		SampleRejected:        {Label: "Rejected", Badge: BadgeDanger},
		SampleArchived:        {Label: "Archived", Badge: BadgeMuted},
	},
	KindPayment: {
		PaymentPending:   {Label: "Pending", Badge: BadgeWarning},
		PaymentConfirmed: {Label: "Confirmed", Badge: BadgeSuccess},
		PaymentOverdue:   {Label: "Overdue", Badge: BadgeDanger},
		PaymentRefunded:  {Label: "Refunded", Badge: BadgeMuted},
	},
}

// statusOrder lists each kind's statuses in lifecycle order, for clients that
// render selects or progress indicators.
var statusOrder = map[Kind][]string{
	KindTicket: {
		TicketNovo, TicketEmAnalise, TicketEmDesenvolvimento,
		TicketAguardandoResposta, TicketResolvido, TicketFechado, TicketCancelado,
	},
	KindPrescription: {PrescriptionPending, PrescriptionApproved, PrescriptionRejected},
	KindOrder: {
		OrderPending, OrderAwaitingPayment, OrderPaymentConfirmed, OrderProcessing,
		OrderShipped, OrderDelivered, OrderCanceled, OrderRefunded,
	},
	KindSample: {
		SampleRegistered, SampleCollected, SampleReceived, SampleInProgress,
		SamplePendingApproval, SampleCompleted, SampleRejected, SampleArchived,
	},
	KindPayment: {PaymentPending, PaymentConfirmed, PaymentOverdue, PaymentRefunded},
}

// Lookup returns the presentation for a status value. Unknown kinds or values
// fall back to the raw status string with a neutral badge; the upstream API is
// not validated client-side, so an unmapped value must render, not error.
func Lookup(kind Kind, status string) Presentation {
	if m, ok := registry[kind]; ok {
		if p, ok := m[status]; ok {
			return p
		}
	}
	return Presentation{Label: status, Badge: BadgeNeutral}
}

// Known reports whether the status value is part of the kind's vocabulary.
func Known(kind Kind, status string) bool {
	m, ok := registry[kind]
	if !ok {
		return false
	}
	_, ok = m[status]
	return ok
}

// Statuses returns the kind's status values in lifecycle order.
func Statuses(kind Kind) []string {
	src := statusOrder[kind]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Registry returns the full presentation table for a kind, keyed by status
// value. Served by GET /statuses/{kind} so clients share one source of truth.
func Registry(kind Kind) map[string]Presentation {
	src := registry[kind]
	out := make(map[string]Presentation, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
