package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistroboss/internal/domain"
)

func TestPrintStats(t *testing.T) {
	stats := domain.AdminStats{Users: 3, Products: 12, Orders: 2, Revenue: "35.50"}

	var text bytes.Buffer
	require.NoError(t, printStats(&text, stats, false))
	assert.Equal(t, "users:    3\nproducts: 12\norders:   2\nrevenue:  35.50\n", text.String())

	var raw bytes.Buffer
	require.NoError(t, printStats(&raw, stats, true))
	var decoded domain.AdminStats
	require.NoError(t, json.Unmarshal(raw.Bytes(), &decoded))
	assert.Equal(t, stats, decoded)
}

func TestTokenCmd_RequiresOneArg(t *testing.T) {
	cmd := tokenCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	assert.Error(t, cmd.Execute())
}

func TestTokenCmd_IssuesVerifiableToken(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "segredo-cli")
	t.Setenv("PAYMENT_SECRET_KEY", "sk_test")
	t.Setenv("DATABASE_URL", "postgres://localhost/bistro")

	var out bytes.Buffer
	cmd := tokenCmd()
	cmd.SetArgs([]string{"boss@bistro.com"})
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Regexp(t, `^[\w-]+\.[\w-]+\.[\w-]+\n$`, out.String())
}
