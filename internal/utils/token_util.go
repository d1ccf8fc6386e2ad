package utils

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lMelkorl/b2bminiui/internal/types"
)

// TokenClaims carries the user context under the "claim" key.
type TokenClaims struct {
	Claim types.UserContext `json:"claim"`

	jwt.RegisteredClaims
}

// NewTokenClaims fills registered claims for a session of length ttl.
func NewTokenClaims(user types.UserContext, issuer string, ttl time.Duration, now time.Time) TokenClaims {
	jti, _ := uuid.NewV4()
	return TokenClaims{
		Claim: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			Issuer:    issuer,
			Subject:   user.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// GenerateJWTToken signs claim with an ES256 PEM private key.
func GenerateJWTToken(privateKeyData []byte, claim TokenClaims) (string, error) {
	privateKey, err := jwt.ParseECPrivateKeyFromPEM(privateKeyData)
	if err != nil {
		return "", fmt.Errorf("unable to parse private key: %w", err)
	}
	return jwt.NewWithClaims(jwt.SigningMethodES256, claim).SignedString(privateKey)
}

// ValidateToken verifies an ES256 token and returns its claims.
func ValidateToken(publicKeyData []byte, token string) (*TokenClaims, error) {
	publicKey, err := jwt.ParseECPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("unable to parse public key: %w", err)
	}
	return ValidateTokenWithKey(publicKey, token)
}

// ValidateTokenWithKey is ValidateToken for an already parsed key.
func ValidateTokenWithKey(publicKey *ecdsa.PublicKey, token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("token claim is not valid")
	}
	if claims.Claim.UserID == uuid.Nil {
		return nil, errors.New("missing uid in claim")
	}
	return claims, nil
}

// GenerateKeyPairPEM creates a P-256 key pair for ES256 signing.
func GenerateKeyPairPEM() (privatePEM, publicPEM []byte, err error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	privDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return nil, nil, err
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, err
	}
	privatePEM = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: privDER})
	publicPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return privatePEM, publicPEM, nil
}
