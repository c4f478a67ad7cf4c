package identity

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/boardkit/boardkit/internal/apperr"
	"github.com/boardkit/boardkit/internal/domain"
	"github.com/boardkit/boardkit/internal/logger"
)

type JwtService interface {
	NewToken(actor domain.Actor) (string, error)
	DecodeToken(jwtStr string) (*jwt.Token, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func NewJwt(secretKey string, ttl time.Duration) JwtService {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(actor domain.Actor) (string, error) {
	claims := jwt.MapClaims{
		"uid":       actor.Id,
		"email":     actor.Email,
		"name":      actor.Name,
		"moderator": actor.Moderator,
		"exp":       time.Now().Add(j.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("token signing failed", "error", err)
		return "", &apperr.StatusError{Message: "Can't create token", Code: http.StatusInternalServerError}
	}

	return tokenString, nil
}

func (j *Jwt) DecodeToken(jwtStr string) (*jwt.Token, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &apperr.StatusError{Message: fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]), Code: http.StatusUnauthorized}
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, &apperr.StatusError{Message: "Invalid token signature", Code: http.StatusUnauthorized}
	}

	if !token.Valid {
		return nil, &apperr.StatusError{Message: "Invalid access token", Code: http.StatusUnauthorized}
	}

	return token, nil
}
