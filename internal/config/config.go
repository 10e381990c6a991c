package config

type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
	CookieConfig
	CorsConfig
	BackendConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() []string
	GetAllowedHeaders() []string
}

type mainConfig struct {
	EnvVars
	API
	Storage
	Cookies
	Cors
	Backend
}

// New returns a Config resolved from environment variables and defaults only.
func New() Config {
	return newMainConfig(source{})
}

// Load returns a Config where values from the YAML or JSONC file at path sit between the environment
// and the defaults. An empty path behaves like New.
func Load(path string) (Config, error) {
	if path == "" {
		return New(), nil
	}
	values, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return newMainConfig(source{values: values}), nil
}

func newMainConfig(src source) mainConfig {
	return mainConfig{
		EnvVars: EnvVars{src},
		API:     API{src},
		Storage: Storage{src},
		Cookies: Cookies{src},
		Cors:    Cors{src},
		Backend: Backend{src},
	}
}
