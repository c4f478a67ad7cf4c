// Package identity resolves the acting user for a request. Resolvers
// are strategies picked by config; any failure yields no user, never
// an error, so the gate can fall back to the anonymous placeholder.
package identity

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/boardkit/boardkit/internal/domain"
)

// AccessTokenCookie is the cookie browsers carry the JWT in.
const AccessTokenCookie = "accessToken"

type Resolver interface {
	// CurrentUser returns the actor for the request, or nil when no
	// valid session is present.
	CurrentUser(r *http.Request) *domain.Actor
}

// NewResolver selects a resolution strategy by config name.
func NewResolver(name string, jwtService JwtService) (Resolver, error) {
	switch name {
	case "jwt":
		return &JwtResolver{jwt: jwtService}, nil
	case "header":
		return &HeaderResolver{}, nil
	default:
		return nil, fmt.Errorf("unknown identity strategy %q", name)
	}
}

// JwtResolver reads the token from the accessToken cookie (browser
// clients) or the Authorization header (API clients).
type JwtResolver struct {
	jwt JwtService
}

func (j *JwtResolver) CurrentUser(r *http.Request) *domain.Actor {
	var tokenString string
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		tokenString = cookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}
	if tokenString == "" {
		return nil
	}

	token, err := j.jwt.DecodeToken(tokenString)
	if err != nil {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	uid, ok := claims["uid"].(float64)
	if !ok {
		return nil
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	moderator, _ := claims["moderator"].(bool)

	return &domain.Actor{
		Id:        int64(uid),
		Email:     email,
		Name:      name,
		Moderator: moderator,
	}
}

// HeaderResolver trusts identity headers set by the embedding host
// application. Only for deployments where the host terminates auth.
type HeaderResolver struct{}

func (h *HeaderResolver) CurrentUser(r *http.Request) *domain.Actor {
	rawId := r.Header.Get("X-Boardkit-User")
	if rawId == "" {
		return nil
	}
	id, err := strconv.ParseInt(rawId, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &domain.Actor{
		Id:        id,
		Email:     r.Header.Get("X-Boardkit-Email"),
		Name:      r.Header.Get("X-Boardkit-Name"),
		Moderator: r.Header.Get("X-Boardkit-Moderator") == "true",
	}
}
