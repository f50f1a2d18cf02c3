package domain

// Numeric role codes. They appear both in token claims and in storage, so
// they must never change.
const (
	RoleUser   = 2001
	RoleEditor = 1984
	RoleAdmin  = 5150
)

// RoleSet is the set of named grants on a user record. A populated slot
// denotes the grant; a zero slot denotes no grant. User is always present.
// Admin and Editor are mutually exclusive by policy (the role-update
// operation unsets one when setting the other), not by storage constraint.
type RoleSet struct {
	User   int `json:"User" bson:"User"`
	Editor int `json:"Editor,omitempty" bson:"Editor,omitempty"`
	Admin  int `json:"Admin,omitempty" bson:"Admin,omitempty"`
}

// DefaultRoles is the baseline grant every account starts with.
func DefaultRoles() RoleSet {
	return RoleSet{User: RoleUser}
}

// Values flattens the set to the numeric codes carried in access-token claims.
func (r RoleSet) Values() []int {
	codes := make([]int, 0, 3)
	if r.User != 0 {
		codes = append(codes, r.User)
	}
	if r.Editor != 0 {
		codes = append(codes, r.Editor)
	}
	if r.Admin != 0 {
		codes = append(codes, r.Admin)
	}
	return codes
}

func (r RoleSet) HasAdmin() bool  { return r.Admin != 0 }
func (r RoleSet) HasEditor() bool { return r.Editor != 0 }

// Grants reports whether held contains at least one of the required codes.
// Holding any single required role suffices (OR semantics).
func Grants(held []int, required ...int) bool {
	for _, h := range held {
		for _, want := range required {
			if h == want {
				return true
			}
		}
	}
	return false
}

// User models an account. PasswordHash and RefreshToken never leave the
// server; RefreshToken holds the single currently-valid refresh token, empty
// when logged out.
type User struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email,omitempty"`
	Age          string  `json:"age,omitempty"`
	Job          string  `json:"job,omitempty"`
	Country      string  `json:"country,omitempty"`
	PasswordHash string  `json:"-"`
	Roles        RoleSet `json:"roles"`
	RefreshToken string  `json:"-"`
}
