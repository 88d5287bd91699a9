package notify

import (
	"testing"

	"github.com/verdemed/go-vmp/internal/workflow"
)

func TestSubscriptionMatches(t *testing.T) {
	all := &Subscription{IsActive: true}
	if !all.Matches(workflow.KindTicket) || !all.Matches(workflow.KindOrder) {
		t.Error("empty kinds list should match every kind")
	}

	scoped := &Subscription{IsActive: true, Kinds: []string{"prescription", "sample"}}
	if !scoped.Matches(workflow.KindPrescription) {
		t.Error("expected match for subscribed kind")
	}
	if scoped.Matches(workflow.KindTicket) {
		t.Error("expected no match for unsubscribed kind")
	}

	inactive := &Subscription{IsActive: false}
	if inactive.Matches(workflow.KindTicket) {
		t.Error("inactive subscription should never match")
	}
}

func TestSignVerify(t *testing.T) {
	body := []byte(`{"kind":"ticket","entity_id":"t-1"}`)
	sig := Sign("secret", body)

	if sig == "" {
		t.Fatal("expected non-empty signature")
	}
	if !VerifySignature("secret", body, sig) {
		t.Error("expected signature to verify")
	}
	if VerifySignature("wrong", body, sig) {
		t.Error("expected verification to fail with wrong secret")
	}
	if VerifySignature("secret", []byte("tampered"), sig) {
		t.Error("expected verification to fail for tampered body")
	}
}

func TestSignDeterministic(t *testing.T) {
	body := []byte("payload")
	if Sign("s", body) != Sign("s", body) {
		t.Error("signature must be deterministic")
	}
	if Sign("s1", body) == Sign("s2", body) {
		t.Error("different secrets must give different signatures")
	}
}
