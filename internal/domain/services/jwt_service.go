package services

import (
	"errors"
	"fmt"
	"time"

	"sma-hostel-service/internal/infrastructure/config"
	"sma-hostel-service/utils"

	"github.com/golang-jwt/jwt/v4"
)

// ErrPasswordIncorrect 管理口令错误
var ErrPasswordIncorrect = errors.New("incorrect admin password")

// InterfaceJWTService 定义JWT服务接口
type InterfaceJWTService interface {
	GenerateToken(role string) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	Login(password string) (*LoginResult, error)
}

// LoginResult 表示登录结果
type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// JWTService 提供JWT相关服务。
// 认证是单一管理员的共享口令门禁，口令来自配置，启动时做bcrypt哈希。
type JWTService struct {
	secretKey string
	issuer    string
	adminHash string
}

// JWTClaims 定义JWT令牌的声明结构
type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(cfg *config.Config) InterfaceJWTService {
	hash, err := utils.HashPassword(cfg.DefaultAdminPassword)
	if err != nil {
		// bcrypt只在口令超长时失败，配置口令不应触发
		panic(fmt.Sprintf("哈希管理口令失败: %v", err))
	}

	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "sma-hostel-service",
		adminHash: hash,
	}
}

// GenerateToken 生成JWT令牌
func (s *JWTService) GenerateToken(role string) (string, error) {
	// 令牌有效期为24小时
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &JWTClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateToken 验证JWT令牌
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// Login 校验共享口令并发放管理员令牌
func (s *JWTService) Login(password string) (*LoginResult, error) {
	if !utils.CheckPasswordHash(password, s.adminHash) {
		return nil, ErrPasswordIncorrect
	}

	token, err := s.GenerateToken("admin")
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		Role:  "admin",
	}, nil
}
