package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/token"
)

const secret = "segredo-de-teste"

func TestIssueAndVerify_ReturnsOriginalClaim(t *testing.T) {
	svc := token.NewService(secret, time.Hour)

	for _, email := range []string{"cliente@bistro.com", "admin@bistro.com", "x+tag@exemplo.org"} {
		tok, err := svc.Issue(email)
		require.NoError(t, err)

		claims, err := svc.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, email, claims.Email)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
	}
}

func TestIssue_RequiresEmail(t *testing.T) {
	svc := token.NewService(secret, time.Hour)

	_, err := svc.Issue("  ")

	assert.IsType(t, &apperror.ValidationError{}, err)
}

func TestVerify_Expired(t *testing.T) {
	svc := token.NewService(secret, time.Hour).WithClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	})
	tok, err := svc.Issue("cliente@bistro.com")
	require.NoError(t, err)

	_, err = svc.Verify(tok)

	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}

func TestVerify_TamperedAndForeignTokens(t *testing.T) {
	svc := token.NewService(secret, time.Hour)
	tok, err := svc.Issue("cliente@bistro.com")
	require.NoError(t, err)

	other, err := token.NewService("outro-segredo", time.Hour).Issue("cliente@bistro.com")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "admin@bistro.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iss":   "BistroBoss-API",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	sigStart := strings.LastIndex(tok, ".") + 1
	swap := byte('A')
	if tok[sigStart] == 'A' {
		swap = 'B'
	}
	tampered := tok[:sigStart] + string(swap) + tok[sigStart+1:]

	for name, candidate := range map[string]string{
		"vazio":         "",
		"malformado":    "nao.e.jwt",
		"assinatura":    tampered,
		"outro segredo": other,
		"alg none":      unsigned,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(candidate)
			require.Error(t, err)
			// Sempre o mesmo tipo e a mesma mensagem pública
			assert.IsType(t, &apperror.UnauthorizedError{}, err)
			_, _, msg := apperror.MapToHTTPStatus(err)
			assert.Equal(t, "unauthorized access", msg)
		})
	}
}

func TestVerify_RequiresEmailClaim(t *testing.T) {
	svc := token.NewService(secret, time.Hour)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
		"iss": "BistroBoss-API",
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = svc.Verify(tok)

	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}
