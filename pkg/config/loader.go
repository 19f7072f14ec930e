package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when present; a missing file is not an error.
const DefaultEnvFile = ".env"

// Option configures a Load call.
type Option func(*options)

type options struct {
	files       []string
	required    bool
	environment map[string]string
	prefix      string
}

// WithEnvFiles reads the given dotenv files instead of DefaultEnvFile.
// Every file must exist. Later files override earlier ones; the process
// environment overrides them all.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.files = files
		o.required = true
	}
}

// WithEnvironment parses vars instead of the process environment.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) { o.environment = vars }
}

// WithPrefix prepends prefix to every env tag, e.g. "EDGE_".
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// Load parses environment variables into v using its env and envDefault
// field tags. Values from dotenv files are visible to the parser without
// being exported to the process environment.
//
//	var cfg struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := options{files: []string{DefaultEnvFile}}
	for _, opt := range opts {
		opt(&o)
	}

	vars, err := o.environ()
	if err != nil {
		return err
	}
	if err := env.ParseWithOptions(v, env.Options{Environment: vars, Prefix: o.prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func (o options) environ() (map[string]string, error) {
	vars := make(map[string]string)
	for _, name := range o.files {
		fileVars, err := godotenv.Read(name)
		if err != nil {
			if !o.required && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.Join(ErrReadingEnvFile, fmt.Errorf("%s: %w", name, err))
		}
		maps.Copy(vars, fileVars)
	}

	base := o.environment
	if base == nil {
		base = env.ToMap(os.Environ())
	}
	maps.Copy(vars, base)
	return vars, nil
}
