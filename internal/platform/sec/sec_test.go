package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

/*
TestRequirement checks the gate table for every catalog workflow.
*/
func TestRequirement(t *testing.T) {
	tests := []struct {
		action sec.Action
		want   sec.Gate
	}{
		{sec.ActionViewCatalog, sec.Gate{}},
		{sec.ActionViewMyLoans, sec.Gate{Authenticated: true}},
		{sec.ActionViewAllLoans, sec.Gate{Authenticated: true, Permission: sec.PermCanMarkReturned}},
		{sec.ActionRenew, sec.Gate{Authenticated: true, Permission: sec.PermCanMarkReturned}},
		{sec.ActionViewProfile, sec.Gate{Authenticated: true}},
		{sec.EntityAction(sec.CapAdd, sec.EntityAuthor), sec.Gate{Authenticated: true, Permission: "catalog.add_author"}},
		{sec.EntityAction(sec.CapChange, sec.EntityAuthor), sec.Gate{Authenticated: true, Permission: "catalog.change_author"}},
		{sec.EntityAction(sec.CapDelete, sec.EntityAuthor), sec.Gate{Authenticated: true, Permission: "catalog.delete_author"}},
		{sec.EntityAction(sec.CapAdd, sec.EntityBook), sec.Gate{Authenticated: true, Permission: "catalog.add_book"}},
		{sec.EntityAction(sec.CapChange, sec.EntityBook), sec.Gate{Authenticated: true, Permission: "catalog.change_book"}},
		{sec.EntityAction(sec.CapDelete, sec.EntityBook), sec.Gate{Authenticated: true, Permission: "catalog.delete_book"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, sec.Requirement(tt.action))
		})
	}
}

/*
TestRolePermissions verifies role grants and explicit extras.
*/
func TestRolePermissions(t *testing.T) {
	assert.Equal(t, []string{"catalog.add_book"}, sec.RoleMember.Permissions("catalog.add_book", ""))
	assert.Empty(t, sec.RoleMember.Permissions())

	staff := sec.RoleLibrarian.Permissions()
	assert.Contains(t, staff, string(sec.PermCanMarkReturned))
	assert.Contains(t, staff, "catalog.delete_book")

	assert.True(t, sec.RoleLibrarian.Valid())
	assert.False(t, sec.UserRole("moderator").Valid())
}

/*
TestAuthClaims_Has covers the admin override and explicit grants.
*/
func TestAuthClaims_Has(t *testing.T) {
	var anonymous *sec.AuthClaims
	assert.False(t, anonymous.Has(sec.PermCanMarkReturned))

	member := &sec.AuthClaims{Role: string(sec.RoleMember)}
	assert.False(t, member.Has(sec.PermCanMarkReturned))

	admin := &sec.AuthClaims{Role: string(sec.RoleAdmin)}
	assert.True(t, admin.Has(sec.PermCanMarkReturned))

	granted := &sec.AuthClaims{Role: string(sec.RoleMember), Permissions: []string{"catalog.add_author"}}
	assert.True(t, granted.Has(sec.EntityPermission(sec.CapAdd, sec.EntityAuthor)))
}

/*
TestTokenService_RoundTrip signs a token and verifies the claims survive.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	service := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "locallibrary")
	token, err := service.GenerateAccessToken("u-1", "alice", "librarian", []string{"catalog.can_mark_returned"}, time.Hour)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.True(t, claims.Has(sec.PermCanMarkReturned))

	other := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "someone-else")
	_, err = other.VerifyToken(token)
	assert.Error(t, err)

	expired, err := service.GenerateAccessToken("u-1", "alice", "member", nil, -time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(expired)
	assert.Error(t, err)
}

/*
TestPasswordHash checks bcrypt hashing and comparison.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, sec.CheckPasswordHash("s3cret", hash))
	assert.False(t, sec.CheckPasswordHash("wrong", hash))
	assert.False(t, sec.CheckPasswordHash("s3cret", ""))

	_, err = sec.HashPassword(strings.Repeat("a", sec.MaxPasswordBytes+1))
	assert.ErrorIs(t, err, sec.ErrPasswordTooLong)
}
