package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"

	"github.com/verdant-games/gardensim/internal/config"
	"github.com/verdant-games/gardensim/pkg/models"
)

// JWTValidator handles JWT token validation
type JWTValidator struct {
	config *config.Config
	secret []byte
	redis  *redis.Client
	ctx    context.Context
}

// Claims represents JWT token claims
type Claims struct {
	Username string `json:"username"`
	Icon     string `json:"icon"`
	jwt.RegisteredClaims
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(cfg *config.Config, redisClient *redis.Client) (*JWTValidator, error) {
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret not configured")
	}
	validator := &JWTValidator{
		config: cfg,
		secret: []byte(cfg.JWT.Secret),
		redis:  redisClient,
		ctx:    context.Background(),
	}
	log.Println("JWT validator initialized")
	return validator, nil
}

// IssueToken signs a token for a player, used by the login endpoint
func (v *JWTValidator) IssueToken(username, icon string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		Icon:     icon,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    v.config.JWT.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(v.config.JWT.ExpiryHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken validates a JWT token and returns player information
func (v *JWTValidator) ValidateToken(tokenString string) (*models.Player, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.Issuer != v.config.JWT.Issuer {
		return nil, fmt.Errorf("invalid issuer: expected %s, got %s", v.config.JWT.Issuer, claims.Issuer)
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("token expired")
	}

	if claims.Username == "" {
		return nil, fmt.Errorf("token has no username")
	}

	// Check Redis revocation list
	revokedKey := v.config.JWT.RevokedPrefix + claims.Username
	isRevoked, err := v.redis.Exists(v.ctx, revokedKey).Result()
	if err != nil {
		log.Printf("Warning: Failed to check revocation list: %v", err)
		// Continue anyway - don't fail authentication if Redis is down
	} else if isRevoked > 0 {
		return nil, fmt.Errorf("token is revoked")
	}

	player := &models.Player{
		ID:       claims.Username,
		Username: claims.Username,
		Icon:     claims.Icon,
	}
	return player, nil
}

// RevokeUser marks every token for a username as invalid until the expiry
// window has passed
func (v *JWTValidator) RevokeUser(username string) error {
	revokedKey := v.config.JWT.RevokedPrefix + username
	ttl := time.Duration(v.config.JWT.ExpiryHours) * time.Hour
	if err := v.redis.Set(v.ctx, revokedKey, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke %s: %w", username, err)
	}
	return nil
}

// extractTokenFromHeader extracts JWT token from WebSocket connection header
func extractTokenFromHeader(r *http.Request) string {
	// Try Sec-WebSocket-Protocol header first (recommended)
	protocols := r.Header.Get("Sec-WebSocket-Protocol")
	if protocols != "" {
		// Format: "access_token, <token>"
		var parts []string
		for _, p := range strings.Split(protocols, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) == 2 && parts[0] == "access_token" {
			return parts[1]
		}
	}

	// Try Authorization header
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return auth[len("Bearer "):]
	}

	// Try query parameter (less secure, but supported)
	return r.URL.Query().Get("token")
}
