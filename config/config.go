package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config armazena todas as configurações do serviço Bistro Boss.
// Os campos são preenchidos pelo envconfig a partir das variáveis de ambiente.
type Config struct {
	// Geral
	Port        string `envconfig:"PORT" default:"5000"`
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"bistroboss"`

	// Banco de Dados (PostgreSQL)
	// DATABASE_URL tem precedência; sem ela, a DSN é montada a partir das credenciais.
	DatabaseURL string        `envconfig:"DATABASE_URL"`
	DBUser      string        `envconfig:"DB_USER"`
	DBPass      string        `envconfig:"DB_PASS"`
	DBHost      string        `envconfig:"DB_HOST" default:"localhost:5432"`
	DBName      string        `envconfig:"DB_NAME" default:"bistro"`
	DBTimeout   time.Duration `envconfig:"DB_TIMEOUT" default:"5s"`

	// Cache (Redis). Endereço vazio desliga o cache.
	RedisAddr    string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	MenuCacheTTL time.Duration `envconfig:"MENU_CACHE_TTL" default:"5m"`

	// Segurança (JWT)
	JWTSecretKey string        `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	TokenExpiry  time.Duration `envconfig:"TOKEN_EXPIRY" default:"1h"`

	// Pagamentos (Stripe)
	PaymentSecretKey    string `envconfig:"PAYMENT_SECRET_KEY" required:"true"`
	PaymentCurrency     string `envconfig:"PAYMENT_CURRENCY" default:"usd"`
	PaymentVerifyCharge bool   `envconfig:"PAYMENT_VERIFY_CHARGE" default:"false"`

	// Eventos (RabbitMQ). URL vazia desliga a publicação.
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"bistro.events"`

	// Tracing (OpenTelemetry). Endpoint vazio desliga o exporter.
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// LoadConfig carrega o .env (quando existir) e depois as variáveis de ambiente.
func LoadConfig() (*Config, error) {
	// O .env é opcional: em Docker as variáveis já vêm do ambiente.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("falha ao ler configuração: %w", err)
	}

	if cfg.JWTSecretKey == "" || cfg.PaymentSecretKey == "" {
		return nil, errors.New("falha ao ler configuração: ACCESS_TOKEN_SECRET e PAYMENT_SECRET_KEY não podem ser vazias")
	}

	if cfg.DatabaseURL == "" && cfg.DBUser == "" {
		return nil, errors.New("falha ao ler configuração: defina DATABASE_URL ou DB_USER/DB_PASS")
	}

	return &cfg, nil
}

// DSN retorna a string de conexão do PostgreSQL.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
