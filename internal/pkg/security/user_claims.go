package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret         = "halation-dev"
	jwtIssuer         = "halation"
	jwtExpirationTime = time.Hour * 72
)

// Configure 注入签发参数，留空的字段保持默认值
func Configure(secret, issuer string, expireHrs int) {
	if secret != "" {
		jwtSecret = secret
	}
	if issuer != "" {
		jwtIssuer = issuer
	}
	if expireHrs > 0 {
		jwtExpirationTime = time.Duration(expireHrs) * time.Hour
	}
}

// UserClaims 定义了我们 Token 中需要包含的业务信息
type UserClaims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}
