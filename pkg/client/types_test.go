package client

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want StringList
	}{
		{name: "native array", json: `["mat","band"]`, want: StringList{"mat", "band"}},
		{name: "JSON-encoded array in string", json: `"[\"mat\",\"band\"]"`, want: StringList{"mat", "band"}},
		{name: "plain string becomes single element", json: `"mat"`, want: StringList{"mat"}},
		{name: "empty string", json: `""`, want: nil},
		{name: "null", json: `null`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			if err := json.Unmarshal([]byte(tt.json), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.json, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.json, got, tt.want)
			}
		})
	}
}

func TestStringListDisplay(t *testing.T) {
	var got StringList
	if err := json.Unmarshal([]byte(`"[\"mat\",\"band\"]"`), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.String() != "mat, band" {
		t.Errorf("String() = %q, want %q", got.String(), "mat, band")
	}
}

func TestEquipmentDecodesStringListField(t *testing.T) {
	payload := `{"id":3,"name":"Resistance set","category":"accessories","quantity":4,"status":"available"}`

	var eq Equipment
	if err := json.Unmarshal([]byte(payload), &eq); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if eq.Status != EquipmentAvailable {
		t.Errorf("Status = %q, want %q", eq.Status, EquipmentAvailable)
	}
}
