package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Claims struct {
	Role     string `json:"role"`
	ClientID *uint  `json:"clientId,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) identity() (Identity, error) {
	sub, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || sub == 0 {
		return Identity{}, errors.New("bad subject")
	}
	if c.Role != models.RoleAdmin && c.Role != models.RoleClient {
		return Identity{}, errors.New("bad role")
	}
	if c.Role == models.RoleClient && c.ClientID == nil {
		return Identity{}, errors.New("client token without client id")
	}
	return Identity{SubjectID: uint(sub), Role: c.Role, ClientID: c.ClientID}, nil
}

// IssueToken signs an HS256 token for user valid for ttl.
func IssueToken(secret string, ttl time.Duration, user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:     user.Role,
		ClientID: user.ClientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
