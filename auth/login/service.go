package login

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	gopass "github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"

	authErrors "github.com/lMelkorl/b2bminiui/auth/errors"
	"github.com/lMelkorl/b2bminiui/auth/models"
	"github.com/lMelkorl/b2bminiui/internal/pkg/log"
	"github.com/lMelkorl/b2bminiui/internal/types"
	"github.com/lMelkorl/b2bminiui/internal/utils"
)

// weakScore is the zxcvbn score below which a seeded password is reported.
const weakScore = 3

// userNamespace derives stable token subjects from seed user ids.
var userNamespace = uuid.Must(uuid.FromString("5c1a7f0e-8a5b-4f0e-9c55-2b1d3a7e6f10"))

type ServiceConfig struct {
	PrivateKey []byte
	Issuer     string
	TokenTTL   time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// Service checks console credentials and issues session tokens.
type Service struct {
	users     map[string]models.User
	config    ServiceConfig
	dummyHash []byte
	now       func() time.Time
}

// NewService hashes the seeded passwords and indexes users by email.
func NewService(users []models.User, config ServiceConfig) (*Service, error) {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	if config.TokenTTL <= 0 {
		config.TokenTTL = 24 * time.Hour
	}

	s := &Service{users: make(map[string]models.User, len(users)), config: config, now: time.Now}

	for _, u := range users {
		if u.Password != "" {
			strength := gopass.PasswordStrength(u.Password, []string{u.Email, u.Name})
			if strength.Score < weakScore {
				log.Warn("[login] weak password for %s (score %d/4)", u.Email, strength.Score)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), config.BcryptCost)
			if err != nil {
				return nil, fmt.Errorf("hash password for %s: %w", u.Email, err)
			}
			u.PasswordHash = hash
			u.Password = ""
		}
		if len(u.PasswordHash) == 0 {
			return nil, fmt.Errorf("user %s has no password", u.Email)
		}
		s.users[normalizeEmail(u.Email)] = u
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), config.BcryptCost)
	if err != nil {
		return nil, err
	}
	s.dummyHash = dummy
	return s, nil
}

// Login verifies the credentials and returns the public user with a token.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req == nil || strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: email", authErrors.ErrMissingField)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password", authErrors.ErrMissingField)
	}

	user, ok := s.users[normalizeEmail(req.Email)]
	if !ok {
		// equalize timing with the known-user path
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		log.WarnWithContext(ctx, "[login] unknown account %q", req.Email)
		return nil, authErrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		log.WarnWithContext(ctx, "[login] wrong password for %s", user.Email)
		return nil, authErrors.ErrInvalidCredentials
	}

	claims := utils.NewTokenClaims(UserContext(user), s.config.Issuer, s.config.TokenTTL, s.now())
	token, err := utils.GenerateJWTToken(s.config.PrivateKey, claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", authErrors.ErrTokenGeneration, err)
	}

	log.InfoWithContext(ctx, "[login] %s signed in", user.Email)
	return &models.LoginResponse{Success: true, User: user.Public(), Token: token}, nil
}

// UserContext maps a console user to the token claim.
func UserContext(u models.User) types.UserContext {
	return types.UserContext{
		UserID: uuid.NewV5(userNamespace, u.ID),
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
