package config

type Config interface {
	EnvConfig
	CorsConfig
	AdminConfig
	SecurityConfig
	StorageConfig
	CaptchaConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetDBPath() string
	GetLogLevel() string
	GetEnv() string
	IsProduction() bool
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Admin
	Security
	Storage
	Captcha
}

func New() Config {
	return mainConfig{}
}
