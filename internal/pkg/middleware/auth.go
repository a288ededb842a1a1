package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/logger"
	"bistroboss/internal/pkg/respond"
	"bistroboss/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
// Context Keys devem ser não-exportadas e de um tipo único.
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
)

// UserClaims representa a identidade extraída do token JWT e anexada ao contexto.
type UserClaims struct {
	Email string
}

// TokenVerifier define o contrato de validação necessário para o middleware.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// IdentityLookup é a consulta ao Identity Store usada pelo RequireAdmin.
type IdentityLookup interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// Middleware é a assinatura comum dos gates por rota.
type Middleware func(next http.HandlerFunc) http.HandlerFunc

// Chain aplica os middlewares na ordem em que aparecem:
// Chain(h, auth, admin) equivale a auth(admin(h)).
func Chain(h http.HandlerFunc, mws ...Middleware) http.HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Authenticate exige "Authorization: Bearer <token>", valida o token e anexa
// as claims (email) ao contexto da requisição.
func Authenticate(verifier TokenVerifier, log logger.Logger) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				respond.Error(w, r, log, apperror.NewUnauthorizedError("header Authorization ausente ou malformado"))
				return
			}

			claims, err := verifier.Verify(tokenString)
			if err != nil {
				respond.Error(w, r, log, apperror.NewUnauthorizedError(err.Error()))
				return
			}

			ctx := WithClaims(r.Context(), UserClaims{Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// RequireAdmin deve rodar depois de Authenticate. Consulta o papel do usuário
// no Identity Store; usuário inexistente ou não-admin recebe 403.
func RequireAdmin(lookup IdentityLookup, log logger.Logger) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				// Erro de programação: rota montada sem Authenticate antes.
				respond.Error(w, r, log, apperror.NewInternalError("RequireAdmin executado sem Authenticate na rota.", nil))
				return
			}

			user, err := lookup.FindByEmail(r.Context(), claims.Email)
			if err != nil {
				var notFound *apperror.NotFoundError
				if errors.As(err, &notFound) {
					respond.Error(w, r, log, apperror.NewForbiddenError(apperror.MsgForbiddenRole))
					return
				}
				respond.Error(w, r, log, err)
				return
			}

			if !user.IsAdmin() {
				log.Warn("Acesso administrativo negado.", map[string]interface{}{"email": claims.Email, "path": r.URL.Path})
				respond.Error(w, r, log, apperror.NewForbiddenError(apperror.MsgForbiddenRole))
				return
			}

			next.ServeHTTP(w, r)
		}
	}
}

// ClaimsFromContext extrai as claims anexadas pelo Authenticate.
func ClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// WithClaims anexa claims ao contexto.
func WithClaims(ctx context.Context, claims UserClaims) context.Context {
	return context.WithValue(ctx, UserClaimsKey, claims)
}

func bearerToken(header string) (string, bool) {
	scheme, tok, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}
