package entity

// Role is the authorization level of a user account.
type Role string

const (
	// RoleUser may place and view their own orders.
	RoleUser Role = "USER"
	// RoleAdmin sees every order and manages users, products and customers.
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}
