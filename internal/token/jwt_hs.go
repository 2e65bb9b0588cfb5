package token

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// HSVerifier проверяет access-токены, выпущенные сервисом авторизации (HS256).
type HSVerifier struct {
	accessSecret []byte
	issuer       string
	audience     string
	now          func() time.Time
}

func NewHSVerifier(accessSecret, issuer, audience string) *HSVerifier {
	return &HSVerifier{
		accessSecret: []byte(accessSecret),
		issuer:       issuer,
		audience:     audience,
		now:          time.Now,
	}
}

type customClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// SignAccess выпускает токен тем же секретом; используется в тестах и локальной разработке.
func (p *HSVerifier) SignAccess(id service.Identity, ttl time.Duration) (string, error) {
	now := p.now()
	claims := customClaims{
		Sub:   id.UserID.String(),
		Email: id.Email,
		Name:  id.Name,
		Role:  string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer,
			Subject:   id.UserID.String(),
			Audience:  []string{p.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.accessSecret)
}

func (p *HSVerifier) Verify(ctx context.Context, token string) (service.Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &customClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return p.accessSecret, nil
	},
		jwt.WithAudience(p.audience),
		jwt.WithIssuer(p.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return service.Identity{}, errors.Join(ErrInvalidToken, err)
	}
	cc, ok := parsed.Claims.(*customClaims)
	if !ok || !parsed.Valid {
		return service.Identity{}, ErrInvalidToken
	}
	uid, err := uuid.Parse(cc.Sub)
	if err != nil || uid == uuid.Nil {
		return service.Identity{}, ErrInvalidToken
	}

	role := service.Role(strings.ToLower(cc.Role))
	if role != service.RoleAdmin {
		role = service.RoleCustomer
	}
	return service.Identity{UserID: uid, Email: cc.Email, Name: cc.Name, Role: role}, nil
}
