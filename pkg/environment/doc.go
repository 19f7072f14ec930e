// Package environment carries the deployment stage (development, staging,
// production) through configuration, request contexts and log records.
//
//	var cfg struct {
//		Env environment.Environment `env:"APP_ENV" envDefault:"development"`
//	}
//
//	r.Use(environment.Middleware(cfg.Env))
//	if environment.IsProduction(r.Context()) {
//		// hide internal error details
//	}
package environment
