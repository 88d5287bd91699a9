package order

import "testing"

func TestParsedItems(t *testing.T) {
	o := &Order{
		Items: []string{
			`{"name":"Oleo CBD 3000mg","price":45000,"quantity":1}`,
			`{"name":"Gummies","price":12000,"discountPrice":9900,"quantity":2}`,
		},
	}

	items, err := o.ParsedItems()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "Oleo CBD 3000mg" || items[0].PriceCents != 45000 {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].DiscountCents != 9900 || items[1].Quantity != 2 {
		t.Errorf("unexpected second item: %+v", items[1])
	}
}

func TestParsedItemsMalformed(t *testing.T) {
	o := &Order{
		Items: []string{
			`{"name":"ok","price":100,"quantity":1}`,
			`not json`,
		},
	}

	if _, err := o.ParsedItems(); err == nil {
		t.Fatal("expected error for malformed item")
	}
}

func TestParsedItemsEmpty(t *testing.T) {
	o := &Order{}
	items, err := o.ParsedItems()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", items)
	}
}

func TestEncodeItemsRoundTrip(t *testing.T) {
	in := []Item{
		{Name: "Capsulas", PriceCents: 28000, Quantity: 3},
	}
	encoded, err := EncodeItems(in)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	o := &Order{Items: encoded}
	out, err := o.ParsedItems()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if out[0] != in[0] {
		t.Errorf("round trip mismatch: %+v != %+v", out[0], in[0])
	}
}
