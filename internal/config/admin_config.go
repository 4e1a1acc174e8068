package config

const (
	adminPasswordEnvVar      = "ADMIN_PASSWORD"
	adminPasswordHashEnvVar  = "ADMIN_PASSWORD_HASH"
	adminSessionSecretEnvVar = "ADMIN_SESSION_SECRET"
)

// AdminConfig supplies the shared admin credential and the session signing secret.
// Values are read on every call so a missing variable is never cached.
type AdminConfig interface {
	GetAdminPassword() string
	GetAdminPasswordHash() string
	GetAdminSessionSecret() string
}

type Admin struct{}

var _ AdminConfig = Admin{}

func (Admin) GetAdminPassword() string {
	return GetEnv(adminPasswordEnvVar, "")
}

// GetAdminPasswordHash returns an optional bcrypt hash of the admin password
func (Admin) GetAdminPasswordHash() string {
	return GetEnv(adminPasswordHashEnvVar, "")
}

func (Admin) GetAdminSessionSecret() string {
	return GetEnv(adminSessionSecretEnvVar, "")
}
