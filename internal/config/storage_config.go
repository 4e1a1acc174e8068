package config

const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

type StorageConfig interface {
	GetStorageDriver() string
	GetStorageDir() string
	GetStoragePublicURL() string
	GetS3Bucket() string
	GetS3Region() string
	GetS3Endpoint() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetStorageDriver() string {
	return GetEnv("STORAGE_DRIVER", StorageDriverLocal)
}

func (Storage) GetStorageDir() string {
	return GetEnv("STORAGE_DIR", "./data/uploads")
}

// GetStoragePublicURL is the URL prefix under which locally stored files are served
func (Storage) GetStoragePublicURL() string {
	return GetEnv("STORAGE_PUBLIC_URL", "/uploads")
}

func (Storage) GetS3Bucket() string {
	return GetEnv("S3_BUCKET", "")
}

func (Storage) GetS3Region() string {
	return GetEnv("S3_REGION", "us-east-1")
}

// GetS3Endpoint allows S3 compatible services (MinIO, Yandex Object Storage)
func (Storage) GetS3Endpoint() string {
	return GetEnv("S3_ENDPOINT", "")
}
