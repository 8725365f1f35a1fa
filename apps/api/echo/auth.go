package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-surveys/core"
	"github.com/trezcool/masomo-surveys/core/survey"
)

var (
	contextTokenKey    = "userToken"
	contextIdentityKey = "identity"
)

func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Role      string `json:"role,omitempty"`
	StudentID string `json:"student_id,omitempty"`
	ParentID  string `json:"parent_id,omitempty"`
}

func NewClaims(id survey.Identity, conf *core.Config) *Claims {
	now := time.Now()

	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   id.UserID,
			Audience:  "Surveys",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Role: id.Role.String(),
	}
	switch id.Role {
	case survey.RoleStudent:
		claims.StudentID = id.UserID
	case survey.RoleParent:
		claims.ParentID = id.UserID
	}
	return claims
}

// Identity returns the respondent the claims were issued for.
// Without an explicit role, a student id wins over a parent id.
func (c Claims) Identity() (survey.Identity, error) {
	if c.Role == "" {
		return survey.NewIdentity(c.StudentID, c.ParentID)
	}

	role, err := survey.ParseRole(c.Role)
	if err != nil {
		return survey.Identity{}, err
	}
	id := survey.Identity{Role: role, UserID: c.Subject}
	switch {
	case role == survey.RoleStudent && c.StudentID != "":
		id.UserID = c.StudentID
	case role == survey.RoleParent && c.ParentID != "":
		id.UserID = c.ParentID
	}
	return id, nil
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims, secretKey string) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextIdentity(ctx echo.Context) (survey.Identity, error) {
	if id, ok := ctx.Get(contextIdentityKey).(survey.Identity); ok {
		return id, nil
	}
	return survey.Identity{}, errUnauthorized
}
