package config

type Config interface {
	EnvConfig
	CorsConfig
	TokenConfig
	StoreConfig
}

type mainConfig struct {
	EnvVars
	Cors
	Tokens
	Stores
}

func New() Config {
	return mainConfig{}
}
