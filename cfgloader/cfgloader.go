// Package cfgloader loads and validates configuration at the start of an application.
package cfgloader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rise-and-shine/wrapcall/val"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"

	CodeInvalidEnvironment = "CFGLOADER_INVALID_ENVIRONMENT"
	CodeConfigNotFound     = "CFGLOADER_CONFIG_NOT_FOUND"
)

// MustLoad loads ${Dir}/${ENVIRONMENT}.yaml into T and exits the process on any failure.
//
// A .env file in the working directory is loaded first when present, and
// ${VAR} references inside the YAML file are expanded from the environment.
// Default values come from `default` struct tags and are applied after
// unmarshalling; validation uses `validate` tags.
//
// Example:
//
//	type Config struct {
//	    Wrapper wrapcall.Config `yaml:"wrapper"`
//	    Logger  logger.Config   `yaml:"logger"`
//	}
//
//	cfg := cfgloader.MustLoad[Config]()
func MustLoad[T any](opts ...Option) T {
	o := buildOptions(opts)

	_ = godotenv.Load()

	env, err := defineEnvironment()
	if err != nil {
		exit(err)
	}

	config, err := load[T](filepath.Join(o.Dir, env+".yaml"))
	if err != nil {
		exit(err)
	}

	if !o.Silent {
		printConfig(config)
	}
	return config
}

// Load reads, expands, defaults and validates the YAML file at path.
func Load[T any](path string, opts ...Option) (T, error) {
	o := buildOptions(opts)

	config, err := load[T](path)
	if err != nil {
		return config, err
	}

	if !o.Silent {
		printConfig(config)
	}
	return config, nil
}

func load[T any](path string) (T, error) {
	var config T

	if reflect.TypeFor[T]().Kind() == reflect.Pointer {
		return config, errx.New("[cfgloader]: config type must not be a pointer")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, errx.New(
			"[cfgloader]: config file not found",
			errx.WithCode(CodeConfigNotFound),
			errx.WithDetails(errx.D{"path": path}),
		)
	}
	if err != nil {
		return config, errx.Wrap(err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errx.Wrap(err)
	}

	if err = defaults.Set(&config); err != nil {
		return config, errx.Wrap(err)
	}

	if err = val.ValidateSchema(config); err != nil {
		return config, err
	}

	return config, nil
}

func defineEnvironment() (string, error) {
	env := os.Getenv("ENVIRONMENT")
	if !slices.Contains([]string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}, env) {
		return "", errx.New(
			"[cfgloader]: ENVIRONMENT env variable is not set or invalid. Choices are: production, staging, dev, local, test",
			errx.WithCode(CodeInvalidEnvironment),
			errx.WithDetails(errx.D{"environment": env}),
		)
	}
	return env, nil
}

func exit(err error) {
	e := errx.AsErrorX(err)
	slog.Error(
		fmt.Sprintf("[cfgloader]: %s", e.Error()),
		"code", e.Code(),
		"fields", e.Fields(),
		"details", e.Details(),
	)
	os.Exit(1)
}
