// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements library accounts and password login.

An account carries a role (member, librarian or admin) plus any individually
granted permissions. Login exchanges a username and password for a signed
access token whose claims carry the resolved permission set, so the
authorization gate never needs a database round-trip.
*/
package auth

import (
	"time"

	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

// # Domain Entities

// Account represents a registered library user (borrower or staff).
type Account struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	Permissions  []string     `json:"permissions"`
	IsActive     bool         `json:"is_active"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// String returns the username.
func (account *Account) String() string {
	return account.Username
}

// GrantedPermissions resolves the role's permissions merged with the explicit grants.
func (account *Account) GrantedPermissions() []string {
	return account.Role.Permissions(account.Permissions...)
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldRole        = "role"
	FieldPermissions = "permissions"
)
