package config

import (
	"io/ioutil"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/jokermario/paystack-mcp/pkg/log"
	env "github.com/qiangxue/go-env"
	"gopkg.in/yaml.v2"
)

const (
	defaultBaseURL     = "https://api.paystack.co"
	defaultEnvironment = "test"

	// PlaceholderSecretKey permits unauthenticated local testing when no
	// real credential is configured. Requests made with it will be
	// rejected by Paystack.
	PlaceholderSecretKey = "sk_test_placeholder"
)

// Config represents an application configuration.
type Config struct {
	// Paystack secret key. Required for real use; falls back to a
	// placeholder with a logged warning so the server can start locally.
	SecretKey string `yaml:"secret_key" env:"SECRET_KEY,secret"`
	// Paystack public key. Optional.
	PublicKey string `yaml:"public_key" env:"PUBLIC_KEY,secret"`
	// Environment tag, either "test" or "live". Defaults to "test".
	Environment string `yaml:"environment" env:"ENVIRONMENT"`
	// Paystack API base URL. Defaults to https://api.paystack.co
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
}

// Validate validates the application configuration.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.SecretKey, validation.Required),
		validation.Field(&c.Environment, validation.In("test", "live")),
		validation.Field(&c.BaseURL, validation.Required, is.URL),
	)
}

// UsesPlaceholderKey reports whether the configuration is running on the
// non-authenticated placeholder credential.
func (c Config) UsesPlaceholderKey() bool {
	return c.SecretKey == PlaceholderSecretKey
}

// Load returns an application configuration which is populated from the given
// configuration file and environment variables. The configuration file is
// optional; environment variables prefixed with "PAYSTACK_" take precedence.
func Load(file string, logger log.Logger) (*Config, error) {
	// default config
	c := Config{
		Environment: defaultEnvironment,
		BaseURL:     defaultBaseURL,
	}

	// load from YAML config file, if one is present
	if file != "" {
		bytes, err := ioutil.ReadFile(file)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else if err = yaml.Unmarshal(bytes, &c); err != nil {
			return nil, err
		}
	}

	// load from environment variables prefixed with "PAYSTACK_"
	if err := env.New("PAYSTACK_", logger.Infof).Load(&c); err != nil {
		return nil, err
	}

	if c.SecretKey == "" {
		c.SecretKey = PlaceholderSecretKey
		logger.Infof("warning: using placeholder secret key. Set PAYSTACK_SECRET_KEY for real requests")
	}

	// validation
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}
