package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/carbonledger/carbonledger/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcrypt silently ignores input past 72 bytes; truncate explicitly so hash
// and verify agree on the same prefix.
const maxBcryptBytes = 72

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	b := []byte(password)
	if len(b) > maxBcryptBytes {
		b = b[:maxBcryptBytes]
	}
	hash, err := bcrypt.GenerateFromPassword(b, bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a bcrypt hash.
func CheckPassword(hash, password string) bool {
	b := []byte(password)
	if len(b) > maxBcryptBytes {
		b = b[:maxBcryptBytes]
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), b) == nil
}

// CreateAccessToken issues an HS256 JWT with the user id as subject.
func CreateAccessToken(secret string, userID uint64, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(userID, 10),
		"exp": time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken validates a JWT and returns the user id from its subject.
func ParseAccessToken(secret, tokenString string) (uint64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid claims")
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("missing subject")
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject")
	}
	return userID, nil
}

// CurrentUser loads the user for a validated token subject.
func CurrentUser(db *gorm.DB, userID uint64) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &user, nil
}
