// Package jwt проверяет токены, выпущенные внешним сервисом авторизации.
//
// Сервис только читает из токена идентификатор пользователя. GenerateToken
// нужен для тестов и локальной отладки.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoUserUID токен валиден, но не содержит user_uid.
var ErrNoUserUID = errors.New("token has no user_uid claim")

// CustomClaims данные пользователя в токене.
type CustomClaims struct {
	UserUID string `json:"user_uid"`
	jwt.RegisteredClaims
}

// GenerateToken подписывает токен HS256 для пользователя userUID.
func (j *MakerImpl) GenerateToken(userUID string) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		UserUID: userUID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken проверяет подпись и срок действия, возвращает claims.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	if claims.UserUID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoUserUID)
	}
	return claims, nil
}
