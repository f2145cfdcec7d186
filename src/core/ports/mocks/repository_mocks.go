// Package mocks provides hand-written in-memory fakes for the core ports.
// The mock repository keeps the same admission discipline as the Postgres
// implementation: the capacity check and the shed insert happen under one
// lock, so concurrent allocations cannot oversell a domain.
package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tradefair/src/core/domain"
	"tradefair/src/core/ports"
)

// MockMarketRepository is an in-memory ports.MarketRepository.
// Error injection fields let tests force failures per operation group.
type MockMarketRepository struct {
	mu sync.Mutex

	Users    map[int64]*domain.User
	Profiles map[int64]*domain.VendorProfile
	Domains  map[string]domain.Domain
	Sheds    map[int64]*domain.Shed
	Products map[int64]*domain.Product
	Preorder map[int64]*domain.Preorder
	Follows  map[int64]*domain.Follow
	Payments map[int64]*domain.Payment

	nextID int64

	HealthErr   error
	AllocateErr error
	ProductErr  error
	PreorderErr error
	PaymentErr  error
}

// NewMockMarketRepository returns an empty mock with all stores initialized.
func NewMockMarketRepository() *MockMarketRepository {
	return &MockMarketRepository{
		Users:    make(map[int64]*domain.User),
		Profiles: make(map[int64]*domain.VendorProfile),
		Domains:  make(map[string]domain.Domain),
		Sheds:    make(map[int64]*domain.Shed),
		Products: make(map[int64]*domain.Product),
		Preorder: make(map[int64]*domain.Preorder),
		Follows:  make(map[int64]*domain.Follow),
		Payments: make(map[int64]*domain.Payment),
	}
}

var _ ports.MarketRepository = (*MockMarketRepository)(nil)

func (m *MockMarketRepository) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *MockMarketRepository) Health(ctx context.Context) error {
	return m.HealthErr
}

// Users & profiles

func (m *MockMarketRepository) CreateUser(ctx context.Context, username, email, passwordHash string, role domain.Role) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Username == username {
			return nil, domain.NewConflictError("username already taken")
		}
	}
	u := &domain.User{
		ID:           m.id(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	m.Users[u.ID] = u
	return u, nil
}

func (m *MockMarketRepository) CreateVendor(ctx context.Context, username, email, passwordHash, businessName, description string) (*domain.User, *domain.VendorProfile, error) {
	u, err := m.CreateUser(ctx, username, email, passwordHash, domain.RoleVendor)
	if err != nil {
		return nil, nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &domain.VendorProfile{
		UserID:       u.ID,
		BusinessName: businessName,
		Description:  description,
		CreatedAt:    time.Now(),
	}
	m.Profiles[u.ID] = p
	return u, p, nil
}

func (m *MockMarketRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.NewNotFoundError("user")
}

func (m *MockMarketRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[userID]
	if !ok {
		return nil, domain.NewNotFoundError("user")
	}
	cp := *u
	return &cp, nil
}

func (m *MockMarketRepository) GetVendorProfile(ctx context.Context, userID int64) (*domain.VendorProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Profiles[userID]
	if !ok {
		return nil, domain.NewNotFoundError("vendor profile")
	}
	cp := *p
	return &cp, nil
}

// Domains & sheds

func (m *MockMarketRepository) EnsureDomains(ctx context.Context, domains []domain.Domain) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range domains {
		m.Domains[d.Code] = d
	}
	return nil
}

func (m *MockMarketRepository) DomainUsage(ctx context.Context) ([]ports.DomainUsage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ports.DomainUsage
	for _, d := range m.Domains {
		used := 0
		for _, s := range m.Sheds {
			if s.DomainCode == d.Code {
				used++
			}
		}
		avail := d.Capacity - used
		if avail < 0 {
			avail = 0
		}
		out = append(out, ports.DomainUsage{
			Code:      d.Code,
			Name:      d.Name,
			Total:     d.Capacity,
			Used:      used,
			Available: avail,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *MockMarketRepository) AllocateShed(ctx context.Context, domainCode string, vendorID int64, name string) (*domain.Shed, error) {
	if m.AllocateErr != nil {
		return nil, m.AllocateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.Domains[domainCode]
	if !ok {
		return nil, domain.NewUnknownDomainError(domainCode)
	}
	used := 0
	taken := make(map[int]bool)
	for _, s := range m.Sheds {
		if s.DomainCode == domainCode {
			used++
			taken[s.Number] = true
		}
	}
	if used >= d.Capacity {
		return nil, domain.NewDomainFullError(domainCode)
	}
	number := 1
	for taken[number] {
		number++
	}
	now := time.Now()
	s := &domain.Shed{
		ID:         m.id(),
		DomainCode: domainCode,
		Number:     number,
		Name:       name,
		VendorID:   vendorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.Sheds[s.ID] = s
	cp := *s
	return &cp, nil
}

func (m *MockMarketRepository) GetShed(ctx context.Context, shedID int64) (*domain.Shed, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Sheds[shedID]
	if !ok {
		return nil, domain.NewNotFoundError("shed")
	}
	cp := *s
	return &cp, nil
}

func (m *MockMarketRepository) UpdateShedName(ctx context.Context, shedID int64, name string) (*domain.Shed, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Sheds[shedID]
	if !ok {
		return nil, domain.NewNotFoundError("shed")
	}
	s.Name = name
	s.UpdatedAt = time.Now()
	cp := *s
	return &cp, nil
}

func (m *MockMarketRepository) ReleaseShed(ctx context.Context, shedID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Sheds[shedID]; !ok {
		return domain.NewNotFoundError("shed")
	}
	delete(m.Sheds, shedID)
	for id, p := range m.Products {
		if p.ShedID == shedID {
			delete(m.Products, id)
		}
	}
	return nil
}

func (m *MockMarketRepository) SecureShed(ctx context.Context, shedID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Sheds[shedID]
	if !ok {
		return domain.NewNotFoundError("shed")
	}
	s.Secured = true
	s.UpdatedAt = time.Now()
	return nil
}

func (m *MockMarketRepository) ListSheds(ctx context.Context, domainCode *string) ([]domain.Shed, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Shed
	for _, s := range m.Sheds {
		if domainCode != nil && s.DomainCode != *domainCode {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockMarketRepository) ListShedsByVendor(ctx context.Context, vendorID int64) ([]domain.Shed, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Shed
	for _, s := range m.Sheds {
		if s.VendorID == vendorID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Products

func (m *MockMarketRepository) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if m.ProductErr != nil {
		return nil, m.ProductErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.ID = m.id()
	now := time.Now()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	m.Products[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *MockMarketRepository) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Products[productID]
	if !ok {
		return nil, domain.NewNotFoundError("product")
	}
	cp := *p
	return &cp, nil
}

func (m *MockMarketRepository) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if m.ProductErr != nil {
		return nil, m.ProductErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.Products[p.ID]
	if !ok {
		return nil, domain.NewNotFoundError("product")
	}
	cur.Name = p.Name
	cur.Description = p.Description
	cur.Price = p.Price
	cur.Quantity = p.Quantity
	cur.ImageURL = p.ImageURL
	cur.UpdatedAt = time.Now()
	cp := *cur
	return &cp, nil
}

func (m *MockMarketRepository) DeleteProduct(ctx context.Context, productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Products[productID]; !ok {
		return domain.NewNotFoundError("product")
	}
	delete(m.Products, productID)
	return nil
}

func (m *MockMarketRepository) ListProducts(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Product
	for _, p := range m.Products {
		if filter.ShedID != nil && p.ShedID != *filter.ShedID {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Preorders

func (m *MockMarketRepository) CreatePreorder(ctx context.Context, po *domain.Preorder) (*domain.Preorder, error) {
	if m.PreorderErr != nil {
		return nil, m.PreorderErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *po
	cp.ID = m.id()
	cp.Status = domain.PreorderPending
	now := time.Now()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	m.Preorder[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *MockMarketRepository) GetPreorder(ctx context.Context, preorderID int64) (*domain.Preorder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	po, ok := m.Preorder[preorderID]
	if !ok {
		return nil, domain.NewNotFoundError("preorder")
	}
	cp := *po
	return &cp, nil
}

func (m *MockMarketRepository) UpdatePreorderQuantity(ctx context.Context, preorderID int64, quantity int) (*domain.Preorder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	po, ok := m.Preorder[preorderID]
	if !ok {
		return nil, domain.NewNotFoundError("preorder")
	}
	po.Quantity = quantity
	po.UpdatedAt = time.Now()
	cp := *po
	return &cp, nil
}

func (m *MockMarketRepository) ConfirmPreorder(ctx context.Context, preorderID int64) (*domain.Preorder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	po, ok := m.Preorder[preorderID]
	if !ok {
		return nil, domain.NewNotFoundError("preorder")
	}
	p, ok := m.Products[po.ProductID]
	if !ok {
		return nil, domain.NewNotFoundError("product")
	}
	if p.Quantity < po.Quantity {
		return nil, domain.NewConflictError("insufficient stock")
	}
	p.Quantity -= po.Quantity
	po.Status = domain.PreorderConfirmed
	po.UpdatedAt = time.Now()
	cp := *po
	return &cp, nil
}

func (m *MockMarketRepository) CancelPreorder(ctx context.Context, preorderID int64) (*domain.Preorder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	po, ok := m.Preorder[preorderID]
	if !ok {
		return nil, domain.NewNotFoundError("preorder")
	}
	po.Status = domain.PreorderCancelled
	po.UpdatedAt = time.Now()
	cp := *po
	return &cp, nil
}

func (m *MockMarketRepository) DeletePreorder(ctx context.Context, preorderID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Preorder[preorderID]; !ok {
		return domain.NewNotFoundError("preorder")
	}
	delete(m.Preorder, preorderID)
	return nil
}

func (m *MockMarketRepository) ListPreordersByCustomer(ctx context.Context, customerID int64) ([]domain.Preorder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Preorder
	for _, po := range m.Preorder {
		if po.CustomerID == customerID {
			out = append(out, *po)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockMarketRepository) ListPreordersByVendor(ctx context.Context, vendorID int64) ([]domain.Preorder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Preorder
	for _, po := range m.Preorder {
		if po.VendorID == vendorID {
			out = append(out, *po)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Follows

func (m *MockMarketRepository) CreateFollow(ctx context.Context, customerID, vendorID int64) (*domain.Follow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.Follows {
		if f.CustomerID == customerID && f.VendorID == vendorID {
			return nil, domain.NewConflictError("already following")
		}
	}
	f := &domain.Follow{
		ID:         m.id(),
		CustomerID: customerID,
		VendorID:   vendorID,
		CreatedAt:  time.Now(),
	}
	m.Follows[f.ID] = f
	cp := *f
	return &cp, nil
}

func (m *MockMarketRepository) DeleteFollow(ctx context.Context, customerID, vendorID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, f := range m.Follows {
		if f.CustomerID == customerID && f.VendorID == vendorID {
			delete(m.Follows, id)
			return nil
		}
	}
	return domain.NewNotFoundError("follow")
}

func (m *MockMarketRepository) ListFollows(ctx context.Context, customerID int64) ([]domain.Follow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Follow
	for _, f := range m.Follows {
		if f.CustomerID == customerID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Payments

func (m *MockMarketRepository) CreatePayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	if m.PaymentErr != nil {
		return nil, m.PaymentErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.Payments {
		if ex.Reference == p.Reference {
			return nil, domain.NewConflictError("duplicate payment reference")
		}
	}
	cp := *p
	cp.ID = m.id()
	if cp.Status == "" {
		cp.Status = domain.PaymentPending
	}
	now := time.Now()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	m.Payments[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *MockMarketRepository) GetPaymentByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Payments {
		if p.Reference == reference {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.NewNotFoundError("payment")
}

func (m *MockMarketRepository) GetPaymentForPreorder(ctx context.Context, preorderID int64) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Payments {
		if p.PreorderID != nil && *p.PreorderID == preorderID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.NewNotFoundError("payment")
}

func (m *MockMarketRepository) UpdatePaymentStatus(ctx context.Context, reference string, status domain.PaymentStatus) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Payments {
		if p.Reference == reference {
			p.Status = status
			p.UpdatedAt = time.Now()
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.NewNotFoundError("payment")
}

func (m *MockMarketRepository) MarkShedPaymentSuccess(ctx context.Context, reference string) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Payments {
		if p.Reference != reference {
			continue
		}
		p.Status = domain.PaymentSuccess
		p.UpdatedAt = time.Now()
		if p.ShedID != nil {
			if s, ok := m.Sheds[*p.ShedID]; ok {
				s.Secured = true
				s.UpdatedAt = time.Now()
			}
		}
		cp := *p
		return &cp, nil
	}
	return nil, domain.NewNotFoundError("payment")
}
