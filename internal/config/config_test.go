package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("BASE_URL", "")

	c := New()
	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "DEV", c.GetEnv())
	require.False(t, c.IsProduction())
	require.Empty(t, c.GetBaseURL())
	require.Equal(t, StorageDriverLocal, c.GetStorageDriver())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "prod")
	t.Setenv("BASE_URL", "https://lab.kz/")

	c := New()
	require.Equal(t, ":9000", c.GetPort())
	require.True(t, c.IsProduction())
	require.Equal(t, "https://lab.kz", c.GetBaseURL())
}

func TestAdminSecretsAreReadOnEveryCall(t *testing.T) {
	c := New()
	t.Setenv("ADMIN_SESSION_SECRET", "")
	require.Empty(t, c.GetAdminSessionSecret())

	t.Setenv("ADMIN_SESSION_SECRET", "s3cret")
	require.Equal(t, "s3cret", c.GetAdminSessionSecret())
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("RECAPTCHA_MIN_SCORE", "")
	require.Equal(t, 0.5, New().GetReCaptchaMinScore())

	t.Setenv("RECAPTCHA_MIN_SCORE", "0.7")
	require.Equal(t, 0.7, New().GetReCaptchaMinScore())

	t.Setenv("RECAPTCHA_MIN_SCORE", "high")
	require.Equal(t, 0.5, New().GetReCaptchaMinScore())
}

func TestAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://lab.kz, https://admin.lab.kz,,")

	origins := New().GetAllowedOrigins()
	require.Len(t, origins, 2)
	require.True(t, origins.IsAllowedOrigin("https://admin.lab.kz"))
	require.False(t, origins.IsAllowedOrigin("https://evil.example"))
}
