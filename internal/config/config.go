package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MailTransportSMTP = "smtp"
	MailTransportSES  = "ses"
)

type Config struct {
	Host         string `env:"HOST" envDefault:"127.0.0.1"`
	Port         int    `env:"PORT" envDefault:"5000"`
	PortFallback bool   `env:"PORT_FALLBACK" envDefault:"true"`

	Secret           string `env:"SECRET,required"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	PostgresqlURL string        `env:"POSTGRESQL_URL,required"`
	StoreTimeout  time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	RunMigrations bool          `env:"RUN_MIGRATIONS" envDefault:"true"`

	MailTransport string        `env:"MAIL_TRANSPORT" envDefault:"smtp"`
	MailFrom      string        `env:"MAIL_FROM,required"`
	MailTimeout   time.Duration `env:"MAIL_TIMEOUT" envDefault:"15s"`
	SmtpHost      string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SmtpPort      int           `env:"SMTP_PORT" envDefault:"587"`
	SmtpUsername  string        `env:"SMTP_USERNAME"`
	SmtpPassword  string        `env:"SMTP_PASSWORD"`

	AwsRegion    string `env:"AWS_REGION"`
	AwsAccessKey string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey string `env:"AWS_SECRET_KEY"`

	// Rate limiting is disabled when empty.
	RedisURL string `env:"REDIS_URL"`

	// Queue alerts are disabled when empty.
	RabbitmqURL        string `env:"RABBITMQ_URL"`
	RabbitmqAlertQueue string `env:"RABBITMQ_ALERT_QUEUE" envDefault:"credentials.undelivered"`

	SentryDsn string `env:"SENTRY_DSN"`

	AllowedOrigins  []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	FlashCookieName string   `env:"FLASH_COOKIE_NAME" envDefault:"secureauth_flash"`
}

func Load() (*Config, error) {
	return load(env.Options{})
}

func load(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg, opts); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	err := validation.ValidateStruct(
		c,
		validation.Field(&c.Port, validation.Min(0), validation.Max(65535)),
		validation.Field(&c.SmtpPort, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.MailTransport, validation.In(MailTransportSMTP, MailTransportSES)),
		validation.Field(&c.StoreTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.MailTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.FlashCookieName, validation.Required),
	)
	if err != nil {
		return err
	}
	if c.MailTransport == MailTransportSES && c.AwsRegion == "" {
		return fmt.Errorf("AWS_REGION must be set for the %s mail transport", MailTransportSES)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
