package domain

// Domain is a fixed shed category with a bounded number of slots.
// Domains are process configuration: built once at startup, never
// mutated afterwards.
type Domain struct {
	Code     string
	Name     string
	Capacity int
}

// defaultDomains lists the configured categories in display order.
var defaultDomains = []struct {
	code string
	name string
}{
	{"CB", "Clothings and Beddings"},
	{"EC", "Electronics and Computer wares"},
	{"FB", "Food and Beverages"},
	{"JA", "Jewelry and Accessories"},
}

// Registry is the immutable set of configured domains.
type Registry struct {
	domains []Domain
	byCode  map[string]Domain
}

// NewRegistry builds a registry from the default category set with the
// given per-domain capacity. Capacity must be positive.
func NewRegistry(capacity int) (*Registry, error) {
	if capacity <= 0 {
		return nil, NewValidationError("capacity", "must be positive")
	}
	r := &Registry{byCode: make(map[string]Domain, len(defaultDomains))}
	for _, d := range defaultDomains {
		dom := Domain{Code: d.code, Name: d.name, Capacity: capacity}
		r.domains = append(r.domains, dom)
		r.byCode[d.code] = dom
	}
	return r, nil
}

// List returns the configured domains in stable display order.
func (r *Registry) List() []Domain {
	out := make([]Domain, len(r.domains))
	copy(out, r.domains)
	return out
}

// Get returns the domain for a code, or ErrUnknownDomain.
func (r *Registry) Get(code string) (Domain, error) {
	d, ok := r.byCode[code]
	if !ok {
		return Domain{}, NewUnknownDomainError(code)
	}
	return d, nil
}

// CapacityOf returns the slot capacity for a code, or ErrUnknownDomain.
func (r *Registry) CapacityOf(code string) (int, error) {
	d, err := r.Get(code)
	if err != nil {
		return 0, err
	}
	return d.Capacity, nil
}
