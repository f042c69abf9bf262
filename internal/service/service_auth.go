package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/config"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/store"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/utils"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/golang-jwt/jwt/v5"
)

// authService is the concrete implementation of AuthService.
// Identity issuance is anonymous: a fresh UUID becomes the record id, a JWT
// minted for it proves ownership, and the record itself is created with
// defaults in the same call so the first read never races record creation.
type authService struct {
	// recordRepository is used to create the record backing a new identity.
	recordRepository store.RecordRepository

	// idGenerator mints the opaque record identifiers.
	idGenerator *utils.UUIDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// RecordRepository and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(recordRepository store.RecordRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		recordRepository: recordRepository,
		idGenerator:      utils.NewUUIDGenerator(),
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		logger:           logger,
	}
}

// IssueAnonymous mints a fresh identity: a new record id, its bearer token,
// and the record document itself with zero intake and the default target.
//
// Returns the id and the signed token, or a wrapped storage error if the
// record could not be created. A failed issuance leaves nothing behind to
// clean up: the id was never handed out.
func (a *authService) IssueAnonymous(ctx context.Context) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	id := a.idGenerator.Generate()

	if _, err := a.recordRepository.CreateIfAbsent(ctx, id); err != nil {
		log.Err(err).Str("id", id).Msg("record creation for new identity failed")
		return models.AuthResponse{}, fmt.Errorf("record creation for new identity failed: %w", err)
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, id, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("id", id).Msg("token generation failed")
		return models.AuthResponse{}, fmt.Errorf("token generation failed: %w", err)
	}

	return models.AuthResponse{ID: id, Token: token.String()}, nil
}

// ParseToken verifies the signature, issuer and expiry of a bearer token and
// returns it with the owner id populated.
//
// Returns ErrTokenIsExpired for expired tokens so handlers can distinguish
// a stale session from a forged one.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		log.Err(err).Msg("token validation failed")
		return models.Token{}, fmt.Errorf("token validation failed: %w", err)
	}

	return token, nil
}
