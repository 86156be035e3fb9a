package config

import "time"

// Backend points the console at the inventory REST API.
type Backend struct {
	// BaseURL includes the API prefix, e.g. http://localhost:5000/api.
	BaseURL string `env:"BACKEND_BASE_URL" envDefault:"http://localhost:5000/api"`
	// Timeout bounds a single backend call. Zero disables the bound.
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"0s"`
}
