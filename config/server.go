package config

type ServerConfig struct {
	Host string `env:"HOST"`
	Port int    `env:"PORT"`
}

func NewServerConfig() (*ServerConfig, error) {
	conf := &ServerConfig{
		Host: "0.0.0.0",
		Port: 8501,
	}
	return conf, resolveConfig(conf)
}
