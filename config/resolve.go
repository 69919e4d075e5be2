package config

import (
	"os"

	goconfig "github.com/golobby/config/v3"
	"github.com/golobby/config/v3/pkg/feeder"
	"github.com/habiliai/searchchat/errors"
)

// EnvFileVariable names an alternative dotenv file; ".env" is read when unset.
const EnvFileVariable = "SEARCHCHAT_ENV_FILE"

func envFile() string {
	if file := os.Getenv(EnvFileVariable); file != "" {
		return file
	}
	return ".env"
}

// resolveConfig overlays the dotenv file and then the process environment onto defaults already set in conf.
func resolveConfig[T any](conf *T) error {
	if conf == nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "nil %T", conf)
	}

	reader := goconfig.New()
	if file := envFile(); fileExists(file) {
		reader = reader.AddFeeder(feeder.DotEnv{Path: file})
	} else if os.Getenv(EnvFileVariable) != "" {
		return errors.Wrapf(errors.ErrInvalidConfig, "env file %s not found", file)
	}

	if err := reader.AddFeeder(feeder.Env{}).AddStruct(conf).Feed(); err != nil {
		return errors.Wrapf(err, "failed to load %T", conf)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
