package workflow

import "testing"

type fakeItem struct {
	title, code, status string
}

func (f fakeItem) SearchFields() []string { return []string{f.title, f.code} }
func (f fakeItem) StatusValue() string    { return f.status }

func TestFilterByQueryAndStatus(t *testing.T) {
	items := []fakeItem{
		{"Erro no login", "TKT-001", TicketNovo},
		{"Pedido atrasado", "TKT-002", TicketEmAnalise},
		{"Login lento", "TKT-003", TicketEmAnalise},
	}

	got := Filter(items, "login", "")
	if len(got) != 2 {
		t.Fatalf("query only: got %d items, want 2", len(got))
	}

	got = Filter(items, "login", TicketEmAnalise)
	if len(got) != 1 || got[0].code != "TKT-003" {
		t.Fatalf("query+status: got %+v", got)
	}

	got = Filter(items, "", TicketNovo)
	if len(got) != 1 || got[0].code != "TKT-001" {
		t.Fatalf("status only: got %+v", got)
	}
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	items := []fakeItem{{"Amostra URGENTE", "LAB-9", SampleReceived}}
	if got := Filter(items, "urgente", ""); len(got) != 1 {
		t.Errorf("lowercase query should match uppercase field")
	}
	if got := Filter(items, "  Lab-9 ", ""); len(got) != 1 {
		t.Errorf("query should be trimmed before matching")
	}
}

func TestFilterZeroMatchesReturnsEmptyNotNil(t *testing.T) {
	items := []fakeItem{{"Erro no login", "TKT-001", TicketNovo}}
	got := Filter(items, "inexistente", "")
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}
