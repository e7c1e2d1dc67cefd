package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultFileName         = "/.env"
	defaultOverrideFileName = "/.local.env"
)

type logger interface {
	Debugf(format string, a ...any)
	Infof(format string, a ...any)
	Warnf(format string, a ...any)
	Errorf(format string, a ...any)
}

// EnvLoader reads settings from the process environment, seeded from .env files.
type EnvLoader struct {
	logger logger
}

// NewEnvFile loads <configFolder>/.env and then the file matching APP_ENV
// (<configFolder>/.<APP_ENV>.env, or <configFolder>/.local.env when APP_ENV is unset).
// Precedence is process environment, then the APP_ENV file, then .env.
func NewEnvFile(configFolder string, logger logger) Config {
	conf := &EnvLoader{logger: logger}
	conf.read(configFolder)

	return conf
}

func (e *EnvLoader) read(folder string) {
	var (
		defaultFile  = folder + defaultFileName
		overrideFile = folder + defaultOverrideFileName
		env          = e.Get("APP_ENV")
		initialEnv   = os.Environ()
	)

	defer restoreEnv(initialEnv)

	if err := godotenv.Load(defaultFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			e.logger.Errorf("failed to load config from file: %v, Err: %v", defaultFile, err)
		} else {
			e.logger.Debugf("config file %v not found, using environment only", defaultFile)
		}
	} else {
		e.logger.Infof("Loaded config from file: %v", defaultFile)
	}

	if env != "" {
		overrideFile = filepath.Join(folder, fmt.Sprintf(".%s.env", env))
	}

	if err := godotenv.Overload(overrideFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			e.logger.Errorf("failed to load config from file: %v, Err: %v", overrideFile, err)
		}

		return
	}

	e.logger.Infof("Loaded config from file: %v", overrideFile)
}

func restoreEnv(initial []string) {
	for _, kv := range initial {
		if key, value, ok := strings.Cut(kv, "="); ok {
			_ = os.Setenv(key, value)
		}
	}
}

func (*EnvLoader) Get(key string) string {
	return os.Getenv(key)
}

func (*EnvLoader) GetOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return defaultValue
}
