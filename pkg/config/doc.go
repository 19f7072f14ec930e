// Package config loads env-tagged configuration structs with
// github.com/caarlos0/env/v11, reading dotenv files through
// github.com/joho/godotenv first.
//
// Each component owns its Config struct (httpserver.Config, pg.Config,
// edge.Config, ...) and the service loads them at startup:
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
// Lookups never touch os.Setenv, so tests can pass an explicit environment
// with WithEnvironment and run in parallel.
package config
