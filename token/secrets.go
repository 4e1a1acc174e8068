package token

// SecretProvider supplies the admin credential and signing secret.
// An empty string means the value is not configured.
// config.Config satisfies this interface.
type SecretProvider interface {
	GetAdminPassword() string
	GetAdminPasswordHash() string
	GetAdminSessionSecret() string
}

// StaticSecrets is a fixed SecretProvider, used by tests and tooling
type StaticSecrets struct {
	Password      string
	PasswordHash  string
	SessionSecret string
}

var _ SecretProvider = StaticSecrets{}

func (s StaticSecrets) GetAdminPassword() string      { return s.Password }
func (s StaticSecrets) GetAdminPasswordHash() string  { return s.PasswordHash }
func (s StaticSecrets) GetAdminSessionSecret() string { return s.SessionSecret }
