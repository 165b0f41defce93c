package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storage-api/internal/domain/user"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

// Service verifies bearer tokens issued by the identity provider. Tokens are
// HS256 with a shared secret and must carry an expiry.
type Service struct {
	jwtSecret string
}

func New(jwtSecret string) *Service { return &Service{jwtSecret: jwtSecret} }

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT issues a token for id. The service itself only verifies; this
// is for local tooling and tests.
func (s *Service) GenerateJWT(id user.ID, role string, expiresIn time.Duration) (string, error) {
	claims := Claims{
		UserID: id.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.jwtSecret))
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(s.jwtSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// Identify validates the token and resolves the caller it was issued to.
func (s *Service) Identify(tokenStr string) (user.Identity, error) {
	claims, err := s.ValidateToken(tokenStr)
	if err != nil {
		return user.Identity{}, err
	}

	id, err := user.ParseID(claims.UserID)
	if err != nil {
		return user.Identity{}, ErrInvalidClaims
	}

	return user.Identity{ID: id, Role: claims.Role}, nil
}
