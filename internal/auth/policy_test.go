package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katryana/airport-api/internal/domain"
)

func TestPolicy_Allows(t *testing.T) {
	anonymous := (*Identity)(nil)
	user := &Identity{UserID: 1, Email: "user@example.com"}
	admin := &Identity{UserID: 2, Email: "admin@example.com", IsStaff: true}

	tests := []struct {
		name   string
		policy Policy
		ident  *Identity
		write  bool
		want   bool
	}{
		{"public read anonymous", ReadOnlyAnyoneWriteAdmin, anonymous, false, true},
		{"public read user", ReadOnlyAnyoneWriteAdmin, user, false, true},
		{"public write user denied", ReadOnlyAnyoneWriteAdmin, user, true, false},
		{"public write admin", ReadOnlyAnyoneWriteAdmin, admin, true, true},

		{"auth read anonymous denied", ReadAuthenticatedWriteAdmin, anonymous, false, false},
		{"auth read user", ReadAuthenticatedWriteAdmin, user, false, true},
		{"auth write user denied", ReadAuthenticatedWriteAdmin, user, true, false},
		{"auth write admin", ReadAuthenticatedWriteAdmin, admin, true, true},

		{"owner anonymous denied", OwnerOnly, anonymous, false, false},
		{"owner read user", OwnerOnly, user, false, true},
		{"owner write user", OwnerOnly, user, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Allows(tt.ident, tt.write))
		})
	}
}

func TestCheck_errorKinds(t *testing.T) {
	user := &Identity{UserID: 1}

	assert.NoError(t, Check(ReadOnlyAnyoneWriteAdmin, nil, false))
	assert.ErrorIs(t, Check(ReadAuthenticatedWriteAdmin, nil, false), domain.ErrUnauthorized)
	assert.ErrorIs(t, Check(ReadAuthenticatedWriteAdmin, user, true), domain.ErrForbidden)
	assert.ErrorIs(t, Check(ReadOnlyAnyoneWriteAdmin, nil, true), domain.ErrUnauthorized)
}
