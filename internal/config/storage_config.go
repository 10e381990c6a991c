package config

type StorageConfig interface {
	GetStorageDriver() string
	GetStorageFile() string
	GetRedisURL() string
	GetDatabaseURL() string
	GetStorageNamespace() string
}

type Storage struct{ source }

var _ StorageConfig = Storage{}

// GetStorageDriver is one of "file", "memory", "redis" or "postgres".
func (s Storage) GetStorageDriver() string {
	return s.get("STORAGE_DRIVER", "file")
}

func (s Storage) GetStorageFile() string {
	return s.get("STORAGE_FILE", "./data/session.json")
}

func (s Storage) GetRedisURL() string {
	return s.get("REDIS_URL", "redis://localhost:6379")
}

func (s Storage) GetDatabaseURL() string {
	return s.get("DATABASE_URL", "postgres://localhost:5432/billing_console")
}

func (s Storage) GetStorageNamespace() string {
	return s.get("STORAGE_NAMESPACE", "billing-console")
}
