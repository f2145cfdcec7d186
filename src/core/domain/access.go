package domain

// Actor is the authenticated identity a request acts as. A zero UserID
// with RoleGuest means no authentication was presented.
type Actor struct {
	UserID int64
	Role   Role
}

// Guest returns the anonymous actor used for unauthenticated requests.
func Guest() Actor {
	return Actor{Role: RoleGuest}
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// IsVendor reports whether the actor has the vendor role.
func (a Actor) IsVendor() bool { return a.Role == RoleVendor }

// IsCustomer reports whether the actor has the customer role.
func (a Actor) IsCustomer() bool { return a.Role == RoleCustomer }

// Authenticated reports whether the actor carries a real identity.
func (a Actor) Authenticated() bool { return a.Role != RoleGuest && a.UserID > 0 }

// CanCreateShed permits shed allocation only for authenticated vendors.
func CanCreateShed(a Actor) bool {
	return a.Authenticated() && a.IsVendor()
}

// CanModifyShed permits mutation for admins and the owning vendor.
// Guests and other vendors are always denied.
func CanModifyShed(a Actor, s *Shed) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Authenticated() && a.IsVendor() && a.UserID == s.VendorID
}

// CanCreateProduct permits listing a product only on a shed the actor owns.
func CanCreateProduct(a Actor, s *Shed) bool {
	return CanModifyShed(a, s)
}

// CanModifyProduct permits mutation for admins and the owning vendor.
func CanModifyProduct(a Actor, p *Product) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Authenticated() && a.IsVendor() && a.UserID == p.VendorID
}

// CanCreatePreorder permits preorder creation only for customers.
func CanCreatePreorder(a Actor) bool {
	return a.Authenticated() && a.IsCustomer()
}

// CanViewPreorder permits the owning customer, the product's vendor and admins.
func CanViewPreorder(a Actor, po *Preorder) bool {
	if a.IsAdmin() {
		return true
	}
	if !a.Authenticated() {
		return false
	}
	return a.UserID == po.CustomerID || a.UserID == po.VendorID
}

// CanConfirmPreorder permits only the product's vendor (or an admin).
func CanConfirmPreorder(a Actor, po *Preorder) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Authenticated() && a.IsVendor() && a.UserID == po.VendorID
}

// CanCancelPreorder permits the product's vendor, the owning customer or an admin.
func CanCancelPreorder(a Actor, po *Preorder) bool {
	if a.IsAdmin() {
		return true
	}
	if !a.Authenticated() {
		return false
	}
	if a.IsVendor() && a.UserID == po.VendorID {
		return true
	}
	return a.IsCustomer() && a.UserID == po.CustomerID
}

// CanEditPreorder permits only the owning customer while the preorder is pending.
func CanEditPreorder(a Actor, po *Preorder) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Authenticated() && a.IsCustomer() && a.UserID == po.CustomerID
}

// CanFollow permits follow/unfollow only for customers.
func CanFollow(a Actor) bool {
	return a.Authenticated() && a.IsCustomer()
}
