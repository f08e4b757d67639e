package authapi

import "time"

// Config of the user API client. Base URL selection is the embedding
// application's concern; the client takes whatever it is given.
type Config struct {
	BaseURL            string        `yaml:"base_url" validate:"required,url"`
	Timeout            time.Duration `yaml:"timeout"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify"`
}
