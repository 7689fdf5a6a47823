package cart

import (
	"errors"
	"testing"

	"food-corner/internal/models"
)

func submittable(t *testing.T) []Line {
	t.Helper()
	c := New()
	if err := c.SetLine(momo, 2, "spicy"); err != nil {
		t.Fatalf("SetLine: %v", err)
	}
	return c.SubmittableLines()
}

func TestAssemble(t *testing.T) {
	tests := []struct {
		name      string
		customer  string
		contact   string
		lines     []Line
		wantField string
	}{
		{name: "valid draft", customer: "Pema Sherpa", contact: "021-081-013", lines: nil},
		{name: "empty customer name", customer: "", contact: "12345", wantField: "customer_name"},
		{name: "whitespace customer name", customer: "   ", contact: "12345", wantField: "customer_name"},
		{name: "contact without digits", customer: "Pema Sherpa", contact: "call me", wantField: "contact_number"},
		{name: "empty cart", customer: "Pema Sherpa", contact: "12345", lines: []Line{}, wantField: "items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := tt.lines
			if lines == nil {
				lines = submittable(t)
			}

			draft, err := Assemble(tt.customer, tt.contact, lines)
			if tt.wantField != "" {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("Assemble = %v, want ValidationError", err)
				}
				if verr.Field != tt.wantField {
					t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
				}
				return
			}

			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			if draft.Status != models.StatusReceived {
				t.Errorf("status = %q, want %q", draft.Status, models.StatusReceived)
			}
			if draft.ID != 0 {
				t.Errorf("draft must not carry an id, got %d", draft.ID)
			}
			if draft.ContactNumber != "021081013" {
				t.Errorf("contact = %q, want digits only", draft.ContactNumber)
			}
			if len(draft.Items) != 1 || draft.Items[0].Name != "Chicken Momo" || draft.Items[0].Quantity != 2 {
				t.Errorf("unexpected items %+v", draft.Items)
			}
		})
	}
}

func TestAssemble_SnapshotsPriceAndModifier(t *testing.T) {
	lines := submittable(t)
	draft, err := Assemble("Pema Sherpa", "12345", lines)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	item := draft.Items[0]
	if item.Price != 12.5 || item.Modifier != "spicy" {
		t.Errorf("snapshot = price %v modifier %q, want 12.5 \"spicy\"", item.Price, item.Modifier)
	}
}
