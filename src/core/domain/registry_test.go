package domain

import "testing"

func TestNewRegistryRejectsNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		if _, err := NewRegistry(capacity); err == nil {
			t.Errorf("NewRegistry(%d): expected error, got nil", capacity)
		}
	}
}

func TestRegistryGet(t *testing.T) {
	r, err := NewRegistry(100)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	tests := []struct {
		code     string
		wantName string
		wantErr  bool
	}{
		{"CB", "Clothings and Beddings", false},
		{"EC", "Electronics and Computer wares", false},
		{"FB", "Food and Beverages", false},
		{"JA", "Jewelry and Accessories", false},
		{"XX", "", true},
		{"", "", true},
		{"cb", "", true},
	}
	for _, tt := range tests {
		d, err := r.Get(tt.code)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Get(%q): expected error, got nil", tt.code)
			} else if !IsUnknownDomain(err) {
				t.Errorf("Get(%q): expected unknown domain error, got %v", tt.code, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Get(%q): unexpected error %v", tt.code, err)
			continue
		}
		if d.Name != tt.wantName {
			t.Errorf("Get(%q): name = %q, want %q", tt.code, d.Name, tt.wantName)
		}
		if d.Capacity != 100 {
			t.Errorf("Get(%q): capacity = %d, want 100", tt.code, d.Capacity)
		}
	}
}

func TestRegistryListIsStableAndComplete(t *testing.T) {
	r, err := NewRegistry(50)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	list := r.List()
	if len(list) != 4 {
		t.Fatalf("List: got %d domains, want 4", len(list))
	}
	wantOrder := []string{"CB", "EC", "FB", "JA"}
	for i, code := range wantOrder {
		if list[i].Code != code {
			t.Errorf("List[%d].Code = %q, want %q", i, list[i].Code, code)
		}
	}

	// Mutating the returned slice must not affect the registry.
	list[0].Capacity = 1
	if cap0, _ := r.CapacityOf("CB"); cap0 != 50 {
		t.Errorf("registry mutated through List result: capacity = %d", cap0)
	}
}
