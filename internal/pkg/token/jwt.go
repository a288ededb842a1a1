package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperror "bistroboss/internal/errors"
)

const issuer = "BistroBoss-API"

// Claims define as informações armazenadas no JWT. O email é a única
// identidade; o papel do usuário NÃO vai no token (é consultado no banco).
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service emite e valida tokens HS256 com um segredo do servidor.
type Service struct {
	secretKey []byte
	expiry    time.Duration
	now       func() time.Time
}

// NewService cria uma nova instância do serviço Token.
func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
		now:       time.Now,
	}
}

// WithClock troca o relógio usado na emissão (útil em testes de expiração).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Issue cria um novo JWT assinado contendo o email do usuário.
func (s *Service) Issue(email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", apperror.NewValidationError("O email é obrigatório para emitir o token.")
	}

	now := s.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", apperror.NewInternalError("Falha ao assinar o token.", err)
	}

	return tokenString, nil
}

// Verify valida o token e retorna as claims. Qualquer falha (vazio, malformado,
// assinatura inválida, expirado, sem email) resulta no mesmo UnauthorizedError.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperror.NewUnauthorizedError("token ausente")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(issuer),
	)
	if err != nil || !token.Valid {
		return nil, apperror.NewUnauthorizedError("token inválido ou expirado")
	}

	if claims.Email == "" {
		return nil, apperror.NewUnauthorizedError("token sem email")
	}

	return claims, nil
}
