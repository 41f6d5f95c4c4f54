// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given account.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - permissions: The resolved permission codenames.
	//   - timeToLive: The duration before the token expires.
	GenerateAccessToken(userID, username, role string, permissions []string, timeToLive time.Duration) (string, error)
}

// errInvalidCredentials is shared by every login failure to prevent account enumeration.
var errInvalidCredentials = apperr.Unauthorized("Invalid login credentials")

// Service implements account and login use cases.
type Service struct {
	accountRepository AccountRepository
	tokenProvider     TokenProvider
	logger            *slog.Logger
	now               func() time.Time
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(accountRepo AccountRepository, tokenProv TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		tokenProvider:     tokenProv,
		logger:            logger,
		now:               time.Now,
	}
}

// # Account Creation

// AccountInput holds the data required to enroll a new account.
type AccountInput struct {
	Username    string       `json:"username" validate:"required,max=150"`
	Email       string       `json:"email" validate:"omitempty,email"`
	Password    string       `json:"password" validate:"required,min=8"`
	Role        sec.UserRole `json:"role"`
	Permissions []string     `json:"permissions"`
}

/*
CreateAccount validates, hashes, and persists a new account.

Description: A missing role defaults to member. Explicit permissions are
stored as granted; the role's own permissions are resolved at login.

Parameters:
  - context: context.Context
  - input: AccountInput

Returns:
  - *Account: Created entity
  - error: Validation, Conflict (username taken) or storage errors
*/
func (service *Service) CreateAccount(context context.Context, input AccountInput) (*Account, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Role == "" {
		input.Role = sec.RoleMember
	}

	validator := &validate.Validator{}
	validator.Struct(input)
	validator.Custom(FieldRole, !input.Role.Valid(), "Must be one of: member, librarian, admin")
	for _, permission := range input.Permissions {
		validator.Custom(FieldPermissions, !strings.HasPrefix(permission, "catalog."), fmt.Sprintf("Unknown permission %q", permission))
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return nil, validate.FieldError(FieldPassword, fmt.Sprintf("Maximum %d bytes", sec.MaxPasswordBytes), "")
	}
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	account := &Account{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         input.Role,
		Permissions:  input.Permissions,
		IsActive:     true,
	}

	if err := service.accountRepository.Create(context, account); err != nil {
		return nil, err
	}

	service.logger.Info("account_created",
		slog.String("account_id", account.ID),
		slog.String("role", string(account.Role)),
	)
	return account, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginSession is a successfully issued access token.
type LoginSession struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int      `json:"expires_in"`
	Account     *Account `json:"user"`
}

/*
Login validates credentials and issues an access token.

Description: Verifies identity with a constant-time bcrypt comparison and
signs a token carrying the account's resolved permissions.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready token
  - error: Validation, Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	validator := &validate.Validator{}
	if err := validator.Struct(input).Err(); err != nil {
		return nil, err
	}

	account, err := service.accountRepository.FindByUsername(context, strings.TrimSpace(input.Username))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			sec.CheckPasswordHash(input.Password, "")
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !account.IsActive || !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		service.logger.Warn("login_rejected", slog.String("username", account.Username))
		return nil, errInvalidCredentials
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(
		account.ID, account.Username, string(account.Role), account.GrantedPermissions(), AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	now := service.now()
	if err := service.accountRepository.TouchLogin(context, account.ID, now); err != nil {
		service.logger.Warn("login_touch_failed", slog.Any("error", err))
	} else {
		account.LastLoginAt = &now
	}

	service.logger.Info("account_logged_in", slog.String("account_id", account.ID))
	return &LoginSession{
		AccessToken: accessToken,
		TokenType:   TokenType,
		ExpiresIn:   int(AccessTokenTTL.Seconds()),
		Account:     account,
	}, nil
}

// Profile returns the account of the authenticated caller.
func (service *Service) Profile(context context.Context, id string) (*Account, error) {
	account, err := service.accountRepository.FindByID(context, id)
	if err != nil {
		return nil, dberr.NotFoundAs(err, "Account")
	}
	return account, nil
}
