package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dushixiang/tradejournal/internal/config"
	"github.com/dushixiang/tradejournal/internal/models"
	"github.com/dushixiang/tradejournal/internal/repo"
	"github.com/dushixiang/tradejournal/internal/xe"
	"github.com/dushixiang/tradejournal/pkg/nostd"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	tokenIssuer = "tradejournal"
	tokenType   = "bearer"
)

// AuthService 认证服务
type AuthService struct {
	logger        *zap.Logger
	userRepo      *repo.UserRepo
	jwtSecret     string
	jwtExpiration time.Duration
	clock         Clock
}

// NewAuthService 创建认证服务
func NewAuthService(logger *zap.Logger, db *gorm.DB, conf *config.Config, clock Clock) *AuthService {
	jwtSecret := conf.Auth.JWTSecret
	if jwtSecret == "" {
		logger.Warn("jwt secret not configured, tokens will not survive a restart")
		jwtSecret = uuid.NewString()
	}
	expireMinutes := conf.Auth.TokenExpireMinutes
	if expireMinutes <= 0 {
		expireMinutes = config.DefaultTokenExpireMinutes
	}
	return &AuthService{
		logger:        logger,
		userRepo:      repo.NewUserRepo(db),
		jwtSecret:     jwtSecret,
		jwtExpiration: time.Duration(expireMinutes) * time.Minute,
		clock:         clock,
	}
}

// JWTClaims JWT载荷
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Credentials 注册/登录请求
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
}

// TokenResponse 令牌响应
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// UserInfo 用户信息
type UserInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Signup 注册新账户并签发令牌
func (s *AuthService) Signup(ctx context.Context, req Credentials) (*TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !nostd.IsEmail(email) {
		return nil, invalidParams("email is invalid")
	}
	if req.Password == "" {
		return nil, invalidParams("password is required")
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, xe.ErrAccountAlreadyUsed
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := nostd.BcryptEncode([]byte(req.Password))
	if err != nil {
		return nil, err
	}

	now := s.clock()
	user := &models.User{
		ID:           ulid.Make().String(),
		Email:        email,
		PasswordHash: string(passwordHash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user signed up", zap.String("email", email))
	return s.issueToken(user)
}

// Login 校验账户密码并签发令牌
func (s *AuthService) Login(ctx context.Context, req Credentials, ip string) (*TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login failed: user not found",
				zap.String("email", email),
				zap.String("ip", ip))
			return nil, xe.ErrIncorrectPassword
		}
		return nil, err
	}

	if err := nostd.BcryptMatch([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login failed: invalid password",
			zap.String("email", email),
			zap.String("ip", ip))
		return nil, xe.ErrIncorrectPassword
	}

	s.logger.Info("user logged in",
		zap.String("email", email),
		zap.String("ip", ip))
	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.User) (*TokenResponse, error) {
	now := s.clock()
	expiresAt := now.Add(s.jwtExpiration)
	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: tokenString,
		TokenType:   tokenType,
		ExpiresAt:   expiresAt,
	}, nil
}

// ValidateToken 验证JWT Token
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.clock),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xe.ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, xe.ErrInvalidToken
}

// GetCurrentUser 获取当前用户信息
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 令牌有效但账户已不存在
			return nil, fmt.Errorf("%w: user %s no longer exists", xe.ErrInvalidToken, userID)
		}
		return nil, err
	}

	return &UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}
