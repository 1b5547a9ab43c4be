package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"kdmpxkfa.db"`
	JWTSecret   string `env:"JWT_SECRET"`

	Midtrans Midtrans `envPrefix:"MIDTRANS_"`
	Payment  Payment  `envPrefix:"PAYMENT_"`
	Credit   Credit   `envPrefix:"CREDIT_"`
}

type Midtrans struct {
	MerchantID   string `env:"MERCHANT_ID"`
	ClientKey    string `env:"CLIENT_KEY"`
	ServerKey    string `env:"SERVER_KEY"`
	IsProduction bool   `env:"IS_PRODUCTION" envDefault:"false"`
	Is3DS        bool   `env:"IS_3DS" envDefault:"true"`
}

type Payment struct {
	// window after which an unpaid pending order expires
	ExpiryWindow time.Duration `env:"EXPIRY_WINDOW" envDefault:"24h"`
	TaxRateBps   int64         `env:"TAX_RATE_BPS" envDefault:"1100"`
	Currency     string        `env:"CURRENCY" envDefault:"IDR"`
}

type Credit struct {
	BaseURL string `env:"BASE_URL"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
