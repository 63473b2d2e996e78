package jwtmanager

import (
	"context"
	"errors"
	"fmt"
	"homecare-service/internal/pkg/constvars"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

var ErrInvalidDraftSession = errors.New("invalid draft session token")

// JWTManager signs and verifies the draft session token that binds one browser tab to
// one Draft.
type JWTManager struct {
	log    *zap.Logger
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// CreateTokenInput defines input parameters for token creation.
type CreateTokenInput struct {
	DraftID string
}

// CreateTokenOutput contains the signed token string.
type CreateTokenOutput struct {
	Token     string
	ExpiresAt time.Time
}

// VerifyTokenInput defines parameters for token verification.
type VerifyTokenInput struct {
	Token string
}

// VerifyTokenOutput contains the draft the token is bound to.
type VerifyTokenOutput struct {
	DraftID string
}

func NewJWTManager(secret string, ttl time.Duration, log *zap.Logger) (*JWTManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	return &JWTManager{
		log:    log,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// CreateToken issues an HS256 token carrying the draft ID. It expires together with the draft.
func (j *JWTManager) CreateToken(ctx context.Context, in *CreateTokenInput) (*CreateTokenOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	j.log.Info("JWTManager.CreateToken called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, in.DraftID),
	)

	if strings.TrimSpace(in.DraftID) == "" {
		return nil, fmt.Errorf("draft id is required")
	}

	now := j.now().UTC()
	expiresAt := now.Add(j.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		constvars.DraftSessionDraftIDClaimKey: in.DraftID,
		"iss":                                 constvars.DraftSessionIssuer,
		"iat":                                 now.Unix(),
		"nbf":                                 now.Unix(),
		"exp":                                 expiresAt.Unix(),
	})

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return nil, err
	}
	return &CreateTokenOutput{Token: signed, ExpiresAt: expiresAt}, nil
}

// VerifyToken checks signature, expiry and issuer and returns the bound draft ID.
func (j *JWTManager) VerifyToken(ctx context.Context, in *VerifyTokenInput) (*VerifyTokenOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	j.log.Debug("JWTManager.VerifyToken called", zap.String(constvars.LoggingRequestIDKey, requestID))

	if strings.TrimSpace(in.Token) == "" {
		return nil, ErrInvalidDraftSession
	}

	parsed, err := jwt.Parse(in.Token, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !parsed.Valid {
		j.log.Warn("JWTManager.VerifyToken rejected token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, ErrInvalidDraftSession
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !claims.VerifyIssuer(constvars.DraftSessionIssuer, true) {
		return nil, ErrInvalidDraftSession
	}
	draftID, ok := claims[constvars.DraftSessionDraftIDClaimKey].(string)
	if !ok || draftID == "" {
		return nil, ErrInvalidDraftSession
	}
	return &VerifyTokenOutput{DraftID: draftID}, nil
}
