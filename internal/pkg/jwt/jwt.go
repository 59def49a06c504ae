package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens issued by the auth collaborator and
// mints the short-lived stream tokens SSE clients pass via query string
// (EventSource cannot set headers). Login and refresh flows live outside
// this service.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateStreamToken(companyID string) (token string, expiresIn int, err error)
	ValidateStreamToken(tokenString string) (companyID string, err error)
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateStreamToken generates a short-lived token for SSE connections.
func (j *JWTService) GenerateStreamToken(companyID string) (token string, expiresIn int, err error) {
	expiresIn = 300 // 5 minutes
	expiresAt := time.Now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"company_id": companyID,
		"type":       "stream",
		"exp":        expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateStreamToken validates a stream token and returns the company ID
// it is scoped to.
func (j *JWTService) ValidateStreamToken(tokenString string) (companyID string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "stream" {
		return "", jwt.ErrInvalidJWT()
	}

	companyIDVal, ok := token.Get("company_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	companyID, ok = companyIDVal.(string)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	return companyID, nil
}
