package promptside_test

import (
	"testing"

	"github.com/promptside/hooklistener/pkg/promptside"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	env, err := promptside.ParseEnv("prod")
	require.NoError(t, err)
	require.Equal(t, promptside.EnvProduction, env)

	env, err = promptside.ParseEnv("test")
	require.NoError(t, err)
	require.Equal(t, promptside.EnvTest, env)

	_, err = promptside.ParseEnv("staging")
	require.Error(t, err)
}

func TestEnvironmentDefaults(t *testing.T) {
	t.Run("production", func(t *testing.T) {
		c := promptside.New(promptside.Config{ClientID: "a", ClientSecret: "b"})
		require.Equal(t, promptside.EnvProduction, c.Env())
		require.Equal(t, "https://app.promptside.io", c.BaseURL)
		require.Equal(t, "https://idp.promptside.io/oauth2/v1/token", c.TokenURL)
		require.NotEmpty(t, c.WebhookPublicKey)
	})

	t.Run("production with tenant", func(t *testing.T) {
		c := promptside.New(promptside.Config{ClientID: "a", ClientSecret: "b", Tenant: "acme"})
		require.Equal(t, "https://acme.app.promptside.io", c.BaseURL)
	})

	t.Run("test", func(t *testing.T) {
		c := promptside.New(promptside.Config{ClientID: "a", ClientSecret: "b", Env: promptside.EnvTest})
		require.Equal(t, "https://test.promptside.io", c.BaseURL)
		require.Equal(t, "https://idp-test.promptside.io/oauth2/v1/token", c.TokenURL)
	})

	t.Run("test with tenant", func(t *testing.T) {
		c := promptside.New(promptside.Config{ClientID: "a", ClientSecret: "b", Tenant: "acme", Env: promptside.EnvTest})
		require.Equal(t, "https://acme.test.promptside.io", c.BaseURL)
	})

	t.Run("environments use different webhook keys", func(t *testing.T) {
		prod := promptside.New(promptside.Config{ClientID: "a", ClientSecret: "b"})
		tst := promptside.New(promptside.Config{ClientID: "a", ClientSecret: "b", Env: promptside.EnvTest})
		require.NotEqual(t, prod.WebhookPublicKey, tst.WebhookPublicKey)
	})
}
