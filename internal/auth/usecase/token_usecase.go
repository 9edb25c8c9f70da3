package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/hivelvet/internal/auth/domain"
	authService "github.com/allisson/hivelvet/internal/auth/service"
	apperrors "github.com/allisson/hivelvet/internal/errors"
	roleDomain "github.com/allisson/hivelvet/internal/role/domain"
	userDomain "github.com/allisson/hivelvet/internal/user/domain"
)

type tokenUseCase struct {
	expiration      time.Duration
	userReader      UserReader
	roleReader      RoleReader
	tokenRepo       TokenRepository
	passwordService authService.PasswordService
	tokenService    authService.TokenService
}

// NewTokenUseCase creates a TokenUseCase issuing tokens valid for expiration.
func NewTokenUseCase(
	expiration time.Duration,
	userReader UserReader,
	roleReader RoleReader,
	tokenRepo TokenRepository,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
) TokenUseCase {
	return &tokenUseCase{
		expiration:      expiration,
		userReader:      userReader,
		roleReader:      roleReader,
		tokenRepo:       tokenRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Issue verifies the credentials and stores the hash of a new token.
// Unknown emails and wrong passwords both return ErrInvalidCredentials.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	input *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	user, err := t.userReader.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !t.passwordService.ComparePassword(input.Password, user.Password) {
		return nil, authDomain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, authDomain.ErrUserInactive
	}

	plainToken, tokenHash, err := t.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	token := &authDomain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: tokenHash,
		UserID:    user.ID,
		ExpiresAt: now.Add(t.expiration),
		CreatedAt: now,
	}

	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &authDomain.IssueTokenOutput{
		PlainToken: plainToken,
		ExpiresAt:  token.ExpiresAt,
	}, nil
}

// Authenticate returns the principal of a usable token. Unknown, expired and
// revoked tokens return ErrInvalidCredentials.
func (t *tokenUseCase) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Principal, error) {
	token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrTokenNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !token.Usable(time.Now().UTC()) {
		return nil, authDomain.ErrInvalidCredentials
	}

	user, err := t.userReader.Get(ctx, token.UserID)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, authDomain.ErrUserInactive
	}

	principal := &authDomain.Principal{User: user}
	if user.RoleID == nil {
		return principal, nil
	}

	// A role deleted after assignment leaves the user without privileges.
	role, err := t.roleReader.Get(ctx, *user.RoleID)
	switch {
	case err == nil:
		principal.Role = role
	case apperrors.Is(err, roleDomain.ErrRoleNotFound):
	default:
		return nil, err
	}
	return principal, nil
}

// Revoke marks the token as revoked. Unknown, expired and already revoked
// tokens return ErrInvalidCredentials.
func (t *tokenUseCase) Revoke(ctx context.Context, tokenHash string) error {
	token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrTokenNotFound) {
			return authDomain.ErrInvalidCredentials
		}
		return err
	}

	now := time.Now().UTC()
	if !token.Usable(now) {
		return authDomain.ErrInvalidCredentials
	}

	if err := t.tokenRepo.Revoke(ctx, tokenHash, now); err != nil {
		if apperrors.Is(err, authDomain.ErrTokenNotFound) {
			return authDomain.ErrInvalidCredentials
		}
		return err
	}
	return nil
}

func (t *tokenUseCase) CleanExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrapf(apperrors.ErrInvalidInput, "days must be non-negative, got %d", days)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	if dryRun {
		return t.tokenRepo.CountExpired(ctx, cutoff)
	}
	return t.tokenRepo.DeleteExpired(ctx, cutoff)
}
