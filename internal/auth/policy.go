package auth

import "github.com/katryana/airport-api/internal/domain"

// Identity is the verified caller of a request. A nil *Identity means the
// request is anonymous.
type Identity struct {
	UserID  int64
	Email   string
	IsStaff bool
}

// Policy is a per-resource access rule evaluated per operation kind.
type Policy int

const (
	// ReadOnlyAnyoneWriteAdmin lets anyone read, only admins write.
	ReadOnlyAnyoneWriteAdmin Policy = iota
	// ReadAuthenticatedWriteAdmin requires authentication to read and an
	// admin role to write.
	ReadAuthenticatedWriteAdmin
	// OwnerOnly requires authentication; resources are scoped to the caller.
	OwnerOnly
)

// Allows reports whether ident may perform a read (write=false) or write
// (write=true) operation under the policy.
func (p Policy) Allows(ident *Identity, write bool) bool {
	switch p {
	case ReadOnlyAnyoneWriteAdmin:
		if !write {
			return true
		}
		return ident != nil && ident.IsStaff
	case ReadAuthenticatedWriteAdmin:
		if ident == nil {
			return false
		}
		if !write {
			return true
		}
		return ident.IsStaff
	case OwnerOnly:
		return ident != nil
	}
	return false
}

// Check maps a denied operation to the proper error kind: missing
// authentication when one would be required, insufficient role otherwise.
func Check(p Policy, ident *Identity, write bool) error {
	if p.Allows(ident, write) {
		return nil
	}
	if ident == nil {
		return domain.ErrUnauthorized
	}
	return domain.ErrForbidden
}
