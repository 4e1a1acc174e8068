package config

type SecurityConfig interface {
	GetMaxUploadBytes() int64
	GetMaxFormBytes() int64
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetMaxUploadBytes() int64 {
	return 10 << 20 // 10 MiB
}

func (Security) GetMaxFormBytes() int64 {
	return 64 << 10
}
