package auth

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims subject содержит id пользователя, роль отдельным полем.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret string, issuer string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		issuer: issuer,
	}
}

func (v *Verifier) Parse(tokenString string) (entities.Actor, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, options...)
	if err != nil || !token.Valid {
		return entities.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	actor := entities.Actor{ID: claims.Subject, Role: entities.ActorRole(claims.Role)}
	if actor.ID == "" || !actor.Role.IsValid() {
		return entities.Actor{}, fmt.Errorf("%w: unknown subject or role", ErrInvalidToken)
	}
	return actor, nil
}

// Issue подписывает токен для пользователя. Используется в тестах и утилитах.
func (v *Verifier) Issue(actor entities.Actor, ttl time.Duration, now time.Time) (string, error) {
	claims := &Claims{
		Role: actor.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// ActorFromToken читает subject и роль без проверки подписи.
// Для клиентов, у которых нет секрета: сервер все равно проверит токен на каждом запросе.
func ActorFromToken(tokenString string) (entities.Actor, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return entities.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	actor := entities.Actor{ID: claims.Subject, Role: entities.ActorRole(claims.Role)}
	if actor.ID == "" || !actor.Role.IsValid() {
		return entities.Actor{}, fmt.Errorf("%w: unknown subject or role", ErrInvalidToken)
	}
	return actor, nil
}
