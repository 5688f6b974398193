package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	authdomain "github.com/aquacoop/aquacoop/internal/auth/domain"
	"github.com/aquacoop/aquacoop/internal/config"
	profiledomain "github.com/aquacoop/aquacoop/internal/profile/domain"
	"github.com/aquacoop/aquacoop/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLen = 8

type Params struct {
	fx.In

	Config     config.Config
	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       authdomain.Repository
	ProfileSvc profiledomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       authdomain.Repository
	profileSvc profiledomain.Service
	secret     []byte
	tokenTTL   time.Duration
}

func New(p Params) authdomain.Service {
	secret := p.Config.AuthJWTSecret
	if secret == "" {
		secret = "aquacoop-dev-secret"
		p.Log.Warn("AUTH_JWT_SECRET not set, using development fallback")
	}
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("auth.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		profileSvc: p.ProfileSvc,
		secret:     []byte(secret),
		tokenTTL:   p.Config.AuthTokenTTL,
	}
}

func (s *Service) Signup(ctx context.Context, req authdomain.SignupRequest) (*authdomain.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, authdomain.ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLen {
		return nil, authdomain.ErrInvalidPassword
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, authdomain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Insert(ctx, s.db, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, authdomain.ErrEmailTaken
		}
		return nil, err
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		fullName = email
	}
	if _, err := s.profileSvc.Provision(ctx, profiledomain.ProvisionRequest{
		UserID:   user.ID.String(),
		FullName: fullName,
		Phone:    strings.TrimSpace(req.Phone),
	}); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *Service) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, authdomain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, authdomain.ErrInvalidCredentials
	}

	if err := s.profileSvc.TouchLastLogin(ctx, user.ID.String()); err != nil {
		s.log.Warn("touch last login failed", zap.Error(err))
	}

	return s.issueToken(user)
}

func (s *Service) VerifyToken(_ context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", authdomain.ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, authdomain.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", authdomain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", authdomain.ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *Service) issueToken(user *authdomain.User) (*authdomain.TokenResponse, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		Issuer:    "aquacoop",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &authdomain.TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		UserID:      user.ID.String(),
	}, nil
}
