package domain

import "testing"

func TestCanCreateShed(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"vendor", Actor{UserID: 1, Role: RoleVendor}, true},
		{"customer", Actor{UserID: 2, Role: RoleCustomer}, false},
		{"admin", Actor{UserID: 3, Role: RoleAdmin}, false},
		{"guest", Guest(), false},
		{"vendor role without identity", Actor{Role: RoleVendor}, false},
	}
	for _, tt := range tests {
		if got := CanCreateShed(tt.actor); got != tt.want {
			t.Errorf("%s: CanCreateShed = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCanModifyShed(t *testing.T) {
	shed := &Shed{ID: 10, VendorID: 1}
	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"owner", Actor{UserID: 1, Role: RoleVendor}, true},
		{"other vendor", Actor{UserID: 2, Role: RoleVendor}, false},
		{"admin", Actor{UserID: 99, Role: RoleAdmin}, true},
		{"customer", Actor{UserID: 1, Role: RoleCustomer}, false},
		{"guest", Guest(), false},
	}
	for _, tt := range tests {
		if got := CanModifyShed(tt.actor, shed); got != tt.want {
			t.Errorf("%s: CanModifyShed = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPreorderPolicies(t *testing.T) {
	po := &Preorder{ID: 5, CustomerID: 7, VendorID: 3}

	customer := Actor{UserID: 7, Role: RoleCustomer}
	otherCustomer := Actor{UserID: 8, Role: RoleCustomer}
	vendor := Actor{UserID: 3, Role: RoleVendor}
	otherVendor := Actor{UserID: 4, Role: RoleVendor}
	admin := Actor{UserID: 1, Role: RoleAdmin}
	guest := Guest()

	if !CanViewPreorder(customer, po) || !CanViewPreorder(vendor, po) || !CanViewPreorder(admin, po) {
		t.Error("parties and admin must be able to view the preorder")
	}
	if CanViewPreorder(otherCustomer, po) || CanViewPreorder(otherVendor, po) || CanViewPreorder(guest, po) {
		t.Error("strangers must not view the preorder")
	}

	if !CanConfirmPreorder(vendor, po) || !CanConfirmPreorder(admin, po) {
		t.Error("the vendor and admin must be able to confirm")
	}
	if CanConfirmPreorder(customer, po) || CanConfirmPreorder(otherVendor, po) {
		t.Error("customers and other vendors must not confirm")
	}

	if !CanCancelPreorder(customer, po) || !CanCancelPreorder(vendor, po) {
		t.Error("both parties must be able to cancel")
	}
	if CanCancelPreorder(otherCustomer, po) || CanCancelPreorder(guest, po) {
		t.Error("strangers must not cancel")
	}

	if !CanEditPreorder(customer, po) {
		t.Error("the owning customer must be able to edit")
	}
	if CanEditPreorder(vendor, po) || CanEditPreorder(otherCustomer, po) {
		t.Error("only the owning customer may edit")
	}
}

func TestCanFollow(t *testing.T) {
	if !CanFollow(Actor{UserID: 1, Role: RoleCustomer}) {
		t.Error("customers must be able to follow")
	}
	if CanFollow(Actor{UserID: 1, Role: RoleVendor}) || CanFollow(Guest()) {
		t.Error("vendors and guests must not follow")
	}
}

func TestPreorderStatusTerminal(t *testing.T) {
	if PreorderPending.Terminal() {
		t.Error("pending must not be terminal")
	}
	if !PreorderConfirmed.Terminal() || !PreorderCancelled.Terminal() {
		t.Error("confirmed and cancelled must be terminal")
	}
}
