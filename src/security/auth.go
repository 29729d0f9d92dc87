package security

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService issues and validates the short-lived dashboard tokens. There
// are no stored users: a caller holding the configured API key exchanges it
// for a signed token and presents that on subsequent requests.
type AuthService struct {
	jwtSecret   string
	apiKey      string
	tokenExpiry time.Duration
}

func NewAuthService(jwtSecret, apiKey string, tokenExpiry time.Duration) *AuthService {
	return &AuthService{
		jwtSecret:   jwtSecret,
		apiKey:      apiKey,
		tokenExpiry: tokenExpiry,
	}
}

// VerifyAPIKey compares the presented key against the configured one in
// constant time.
func (a *AuthService) VerifyAPIKey(presented string) bool {
	return subtle.ConstantTimeCompare([]byte(presented), []byte(a.apiKey)) == 1
}

func (a *AuthService) GenerateToken(subject string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(a.tokenExpiry).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.jwtSecret))
}

func (a *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.jwtSecret), nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		sub, ok := claims["sub"].(string)
		if !ok {
			return "", errors.New("invalid token: 'sub' claim missing or not a string")
		}
		return sub, nil
	}

	return "", errors.New("invalid token")
}
