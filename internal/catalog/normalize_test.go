package catalog

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return v
}

func TestItemsShapes(t *testing.T) {
	p1 := map[string]any{"id": "a"}
	p2 := map[string]any{"id": "b"}

	if got := Items([]any{p1, p2}); !reflect.DeepEqual(got, []Product{p1, p2}) {
		t.Fatalf("bare list: got %v", got)
	}
	if got := Items(map[string]any{"data": []any{p1, p2}}); !reflect.DeepEqual(got, []Product{p1, p2}) {
		t.Fatalf("data wrapper: got %v", got)
	}
	if got := Items(map[string]any{"items": []any{p1}}); !reflect.DeepEqual(got, []Product{p1}) {
		t.Fatalf("items wrapper: got %v", got)
	}

	for _, payload := range []any{map[string]any{}, nil, "nope", 42.0} {
		if got := Items(payload); len(got) != 0 {
			t.Fatalf("payload %v: expected empty, got %v", payload, got)
		}
	}
}

func TestItemsSkipsNonObjects(t *testing.T) {
	p := map[string]any{"id": "a"}
	got := Items([]any{p, "junk", nil, 7.0})
	if !reflect.DeepEqual(got, []Product{p}) {
		t.Fatalf("got %v", got)
	}
}

func TestKeyPriority(t *testing.T) {
	cases := []struct {
		name string
		p    Product
		want string
	}{
		{"id wins", Product{"id": "x1", "_id": "y", "sku": "z"}, "x1"},
		{"alt id", Product{"_id": "y2", "sku": "z"}, "y2"},
		{"sku", Product{"sku": "z3"}, "z3"},
		{"numeric id", decode(t, `{"id": 42}`).(map[string]any), "42"},
		{"fallback", Product{"title": "t"}, "idx-7"},
	}

	for _, tc := range cases {
		if got := Key(tc.p, "idx-7"); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestKeyHashFallbackIsDeterministic(t *testing.T) {
	p := Product{"title": "Towel", "color": "blue"}

	k1 := Key(p, "")
	k2 := Key(p, "")
	if k1 == "" || k1 != k2 {
		t.Fatalf("hash key unstable: %q vs %q", k1, k2)
	}

	other := Key(Product{"title": "Towel", "color": "red"}, "")
	if other == k1 {
		t.Fatalf("distinct payloads collided on %q", k1)
	}
}

func TestTitle(t *testing.T) {
	if got := Title(Product{"name": "Goggles"}, 0); got != "Goggles" {
		t.Fatalf("got %q", got)
	}
	if got := Title(Product{"title": "  Bottle "}, 0); got != "Bottle" {
		t.Fatalf("trim: got %q", got)
	}
	if got := Title(Product{}, 2); got != "Product 3" {
		t.Fatalf("placeholder: got %q", got)
	}
}

func TestPricePriorityAndAbsence(t *testing.T) {
	p := decode(t, `{"price": 12, "sellingPrice": 10, "mrp": 15}`).(map[string]any)
	if got, ok := Price(p); !ok || got != 12 {
		t.Fatalf("priority: got %v ok=%v", got, ok)
	}

	p = decode(t, `{"sellingPrice": 9.5}`).(map[string]any)
	if got, ok := Price(p); !ok || got != 9.5 {
		t.Fatalf("sellingPrice: got %v ok=%v", got, ok)
	}

	// Absent is absent, not zero.
	for _, raw := range []string{`{"price": "N/A"}`, `{}`, `{"price": null}`} {
		p = decode(t, raw).(map[string]any)
		if _, ok := Price(p); ok {
			t.Fatalf("payload %s: expected no price", raw)
		}
	}
}

func TestDescription(t *testing.T) {
	if got := Description(Product{"details": " nice "}); got != "nice" {
		t.Fatalf("got %q", got)
	}
	if got := Description(Product{"description": "   "}); got != placeholderDescription {
		t.Fatalf("blank: got %q", got)
	}
}

func TestImages(t *testing.T) {
	p := decode(t, `{
		"images": [
			{"url": "https://x/1.jpg"},
			{"src": "https://x/2.jpg"},
			null,
			{"note": "no url here"},
			"https://x/3.jpg"
		]
	}`).(map[string]any)

	want := []string{"https://x/1.jpg", "https://x/2.jpg", "https://x/3.jpg"}
	if got := Images(p); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}

	p = Product{"thumbnail": "https://x/t.jpg"}
	if got := Images(p); !reflect.DeepEqual(got, []string{"https://x/t.jpg"}) {
		t.Fatalf("fallback: got %v", got)
	}

	got := Images(Product{"title": "no pics"})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
