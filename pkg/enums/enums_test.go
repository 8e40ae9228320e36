package enums

import "testing"

func TestParseLivestockType(t *testing.T) {
	tests := []struct {
		in      string
		want    LivestockType
		wantErr bool
	}{
		{in: "Goat", want: LivestockTypeGoat},
		{in: "buffalo", want: LivestockTypeBuffalo},
		{in: " Cow ", want: LivestockTypeCow},
		{in: "Camel", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLivestockType(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLivestockType(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if !DefaultLivestockType.IsValid() {
		t.Fatalf("default livestock type must be valid")
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusProcessing, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusProcessing, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
		{OrderStatusShipped, OrderStatusShipped, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Fatalf("%s -> %s: expected %v got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if OrderStatusProcessing.IsTerminal() || OrderStatusShipped.IsTerminal() {
		t.Fatalf("processing and shipped are not terminal")
	}
	if !OrderStatusDelivered.IsTerminal() || !OrderStatusCancelled.IsTerminal() {
		t.Fatalf("delivered and cancelled are terminal")
	}
}

func TestParseOrderStatus(t *testing.T) {
	got, err := ParseOrderStatus("shipped")
	if err != nil || got != OrderStatusShipped {
		t.Fatalf("expected Shipped, got %s (%v)", got, err)
	}
	if _, err := ParseOrderStatus("Lost"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}
