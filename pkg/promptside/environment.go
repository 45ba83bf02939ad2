package promptside

import "fmt"

// Env selects which Promptside deployment the client talks to. It determines
// the API base URL, the token endpoint and the webhook signing key.
type Env string

const (
	EnvProduction Env = "prod"
	EnvTest       Env = "test"
)

// ParseEnv maps a configuration string onto an Env.
func ParseEnv(s string) (Env, error) {
	switch Env(s) {
	case EnvProduction, EnvTest:
		return Env(s), nil
	default:
		return "", fmt.Errorf("promptside: unknown environment %q", s)
	}
}

// productionWebhookPublicKey verifies webhook payloads signed by the
// production environment. Never used for outbound request signing.
const productionWebhookPublicKey = `-----BEGIN PUBLIC KEY-----
MIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8AMIIBCgKCAQEA4vGkRMKR4VHJDDNSyWnd
1KHXcw9zqdHpOn3WR/yzs5eV5AIlDyhq7ntKSEx+I10GiJ9eIK0+ur1k4UH1xN5z
gQ8wfrhYo3URtHpOrXOt5irYjW26kvOAUH7ImJ2H2LGlJVvSXpLsFLN6KDvm9jcc
zDqStn1le3O4Dfby9MD0TqvjXJFrCKwiTCfKtYQjcpnHlenyxh8Rb/eV+SsOEH1G
omFqu4iZxoBInj/2BxUjXT8FAEInbZSKlq2YWcgo7Qj60dhIaLf/FjQ7dXy7R7md
i51xTwO/jfSYLy7PkcyXS6ca2RBM9OxTSqoFcHhCKteBYLXc/2StULA1QMP8u3b1
/wIDAQAB
-----END PUBLIC KEY-----`

// testWebhookPublicKey verifies webhook payloads signed by the test
// environment.
const testWebhookPublicKey = `-----BEGIN PUBLIC KEY-----
MIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8AMIIBCgKCAQEAxW2tz/mMq0xbTX8TFUIf
S/uPdm7gOOa4fi4XPO93SGqNDRCZGelry37U1m4WbQt0u6xsill6C7N3oJu/puEy
RW8Ki+dkzu2ugMCBONbToUOXAYI0VYNWtPt3PqaqBUuq2Gt+iay05awvUH9XpGr+
QjOWkLxjZNKRtsnQ6s0WEhfWxF+iK8E6I396+lFNzB/ti0czrYvR/jUO6wMtysgY
+HbYQyr3SRgvGv7uNPMy+Ov9cqtRJ6HXon9Qd5F5awpjxu+9alVGP2t8Fb+cL/CB
3gKxb6aJ8gKSPd7AgI5+Y+f4TTI61JvaQ6PCzHFwPYxtzO2XkQ1VGFHXs8xwa/7a
mQIDAQAB
-----END PUBLIC KEY-----`

// baseURL returns the REST API base URL, with the optional tenant short
// name as a subdomain prefix.
func (e Env) baseURL(tenant string) string {
	prefix := ""
	if tenant != "" {
		prefix = tenant + "."
	}
	if e == EnvTest {
		return fmt.Sprintf("https://%stest.promptside.io", prefix)
	}
	return fmt.Sprintf("https://%sapp.promptside.io", prefix)
}

// tokenURL returns the OAuth2 token endpoint for the environment.
func (e Env) tokenURL() string {
	if e == EnvTest {
		return "https://idp-test.promptside.io/oauth2/v1/token"
	}
	return "https://idp.promptside.io/oauth2/v1/token"
}

// webhookPublicKey returns the environment's webhook verification key PEM.
func (e Env) webhookPublicKey() []byte {
	if e == EnvTest {
		return []byte(testWebhookPublicKey)
	}
	return []byte(productionWebhookPublicKey)
}
