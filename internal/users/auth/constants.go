// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// A working day, so staff are not logged out mid-shift.
	AccessTokenTTL = 8 * time.Hour

	// TokenType is the scheme clients send the access token with.
	TokenType = "Bearer"

	// MinPasswordLength is enforced when accounts are created.
	MinPasswordLength = 8

	// MaxUsernameLength matches the users.account column.
	MaxUsernameLength = 150
)
