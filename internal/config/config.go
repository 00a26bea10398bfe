package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/cache"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/mq"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/mysql"
	"github.com/spf13/viper"
)

type Config struct {
	API      API          `mapstructure:"api"`
	Database Database     `mapstructure:"database"`
	Redis    cache.Config `mapstructure:"redis"`
	RabbitMQ mq.Config    `mapstructure:"rabbitmq"`
	Payme    Payme        `mapstructure:"payme"`
	Click    Click        `mapstructure:"click"`
	Notifier Notifier     `mapstructure:"notifier"`
	Outbox   Outbox       `mapstructure:"outbox"`
}

type API struct {
	Port string `mapstructure:"port"`
	// Key guards the payment link endpoint through the X-API-Key header. Empty disables the check.
	Key string `mapstructure:"key"`
}

type Database struct {
	mysql.Config `mapstructure:",squash"`
	AutoMigrate  bool `mapstructure:"auto_migrate"`
}

type Payme struct {
	MerchantID  string `mapstructure:"merchant_id"`
	Key         string `mapstructure:"key"`
	TestKey     string `mapstructure:"test_key"`
	CheckoutURL string `mapstructure:"checkout_url"`
	AccountKey  string `mapstructure:"account_key"`
	MinorUnit   int64  `mapstructure:"minor_unit"`
	MinAmount   int64  `mapstructure:"min_amount"`
	MaxAmount   int64  `mapstructure:"max_amount"`
}

type Click struct {
	ServiceID  string `mapstructure:"service_id"`
	MerchantID string `mapstructure:"merchant_id"`
	SecretKey  string `mapstructure:"secret_key"`
	PayURL     string `mapstructure:"pay_url"`
	MinorUnit  int64  `mapstructure:"minor_unit"`
}

type Notifier struct {
	Enable     bool          `mapstructure:"enable"`
	URL        string        `mapstructure:"url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

type Outbox struct {
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
}

func Load() (cfg *Config, err error) {
	return LoadFrom("./config")
}

// LoadFrom reads config.yml from dir. Variables from a .env file in the working
// directory are loaded first; environment variables override file values,
// e.g. PAYME_KEY for payme.key.
func LoadFrom(dir string) (cfg *Config, err error) {
	if err = godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(dir)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	err = v.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", "8080")
	v.SetDefault("payme.checkout_url", "https://checkout.paycom.uz")
	v.SetDefault("payme.account_key", "order_id")
	v.SetDefault("payme.minor_unit", 100)
	v.SetDefault("payme.min_amount", 100000)
	v.SetDefault("payme.max_amount", 999999999)
	v.SetDefault("click.pay_url", "https://my.click.uz/services/pay")
	v.SetDefault("click.minor_unit", 1)
	v.SetDefault("redis.ttl", time.Hour)
	v.SetDefault("rabbitmq.queue", "payment.events")
	v.SetDefault("rabbitmq.prefetch", 10)
	v.SetDefault("notifier.timeout", 5*time.Second)
	v.SetDefault("notifier.max_retries", 3)
	v.SetDefault("outbox.interval", 2*time.Second)
	v.SetDefault("outbox.batch_size", 100)
}
