package models

import (
	"encoding/json"
	"testing"
)

func TestSpecificationsOrder(t *testing.T) {
	body := `{
		"productId": "acd-20",
		"specifications": {
			"Voltage": "20V",
			"Battery": "4Ah",
			"Weight": "3.2 lb",
			"Chuck Size": "1/2 in"
		}
	}`

	var product CatalogProduct
	if err := json.Unmarshal([]byte(body), &product); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []SpecEntry{
		{Key: "Voltage", Value: "20V"},
		{Key: "Battery", Value: "4Ah"},
		{Key: "Weight", Value: "3.2 lb"},
		{Key: "Chuck Size", Value: "1/2 in"},
	}
	if len(product.Specifications) != len(want) {
		t.Fatalf("got %d entries, want %d", len(product.Specifications), len(want))
	}
	for i, w := range want {
		if product.Specifications[i] != w {
			t.Errorf("entry %d = %+v, want %+v", i, product.Specifications[i], w)
		}
	}
}

func TestSpecificationsNull(t *testing.T) {
	var specs Specifications
	if err := json.Unmarshal([]byte("null"), &specs); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if specs != nil {
		t.Errorf("specs = %v, want nil", specs)
	}
}

func TestSpecificationsRejectNonObject(t *testing.T) {
	var specs Specifications
	if err := json.Unmarshal([]byte(`["Voltage"]`), &specs); err == nil {
		t.Fatal("want an error for a non-object specifications value")
	}
}

func TestSpecificationsRoundTrip(t *testing.T) {
	specs := Specifications{
		{Key: "Voltage", Value: "20V"},
		{Key: "Weight", Value: "3.2 lb"},
	}
	data, err := json.Marshal(specs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"Voltage":"20V","Weight":"3.2 lb"}` {
		t.Errorf("marshal = %s, want key order preserved", data)
	}
}
