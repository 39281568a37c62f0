package types

import (
	"encoding/json"
	"testing"
)

func TestNullableUUIDUnmarshal(t *testing.T) {
	type payload struct {
		PartnerID NullableUUID `json:"partnerId"`
	}

	var got payload
	if err := json.Unmarshal([]byte(`{"partnerId": "00000000-0000-0000-0000-000000000001"}`), &got); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if !got.PartnerID.Valid || got.PartnerID.Value == nil {
		t.Fatalf("expected valid uuid, got %v", got.PartnerID)
	}
	if got.PartnerID.Value.String() != "00000000-0000-0000-0000-000000000001" {
		t.Fatalf("unexpected uuid %s", got.PartnerID.Value)
	}

	got = payload{}
	if err := json.Unmarshal([]byte(`{"partnerId": null}`), &got); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !got.PartnerID.Valid || got.PartnerID.Value != nil {
		t.Fatalf("expected null to be valid but nil, got %v", got.PartnerID)
	}

	got = payload{}
	if err := json.Unmarshal([]byte(`{}`), &got); err != nil {
		t.Fatalf("unmarshal missing: %v", err)
	}
	if got.PartnerID.Valid {
		t.Fatalf("expected invalid flag for missing field, got %+v", got.PartnerID)
	}
}
