package utils

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bbs/config"
	"bbs/internal/infra/cache"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("token invalid or expired")

// Claims 是从 token 中解析出的身份信息
type Claims struct {
	UserID    uint
	Username  string
	JTI       string
	ExpiresAt time.Time
}

func GenerateToken(cfg *config.Config, userID uint, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  strconv.FormatUint(uint64(userID), 10),
		"username": username,
		// 唯一ID用于黑名单
		"jti": uuid.NewString(),
		"exp": now.Add(cfg.JWTExpirationTime).Unix(),
		"iat": now.Unix(),
		"iss": cfg.JWTIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecretKey))
}

func ValidateToken(cfg *config.Config, tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWTSecretKey), nil
	}, jwt.WithIssuer(cfg.JWTIssuer), jwt.WithExpirationRequired())
}

// ParseToken 校验签名、签发者和过期时间，返回其中的用户信息
func ParseToken(cfg *config.Config, tokenString string) (*Claims, error) {
	token, err := ValidateToken(cfg, tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	uidStr, _ := mc["user_id"].(string)
	uid, err := strconv.ParseUint(uidStr, 10, 64)
	if err != nil || uid == 0 {
		return nil, fmt.Errorf("%w: bad user_id claim", ErrInvalidToken)
	}

	claims := &Claims{UserID: uint(uid)}
	claims.Username, _ = mc["username"].(string)
	claims.JTI, _ = mc["jti"].(string)
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

func blacklistKey(jti string) string {
	return "blacklist:" + jti
}

// IsTokenBlacklisted Redis 出错时返回错误，由调用方决定是否降级
func IsTokenBlacklisted(ctx context.Context, rdb *cache.RedisCache, claims *Claims) (bool, error) {
	if rdb == nil || claims.JTI == "" {
		return false, nil
	}
	found, err := rdb.Exists(ctx, blacklistKey(claims.JTI))
	if err != nil {
		return false, fmt.Errorf("redis error checking blacklist: %w", err)
	}
	return found, nil
}

// AddTokenToBlacklist 黑名单条目在 token 过期时一起过期
func AddTokenToBlacklist(ctx context.Context, rdb *cache.RedisCache, claims *Claims) error {
	if claims.JTI == "" {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return rdb.Set(ctx, blacklistKey(claims.JTI), "1", ttl)
}

func GetTokenHash(token string) string {
	if token == "" {
		return "empty"
	}
	hash := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", hash[:8]) // 取前8字节（16字符）足够区分，又不冗长
}
