package ticket

import "testing"

func TestValidPriority(t *testing.T) {
	for _, p := range []string{PriorityBaixa, PriorityMedia, PriorityAlta, PriorityUrgente} {
		if !ValidPriority(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
	for _, p := range []string{"", "low", "URGENTE", "critical"} {
		if ValidPriority(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestSearchFields(t *testing.T) {
	tk := &Ticket{Title: "Login quebrado", Description: "Erro 500 ao entrar", Category: "acesso"}
	fields := tk.SearchFields()
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[0] != "Login quebrado" || fields[2] != "acesso" {
		t.Errorf("unexpected fields: %v", fields)
	}
}
