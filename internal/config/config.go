package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer

	Database Database `envPrefix:"DATABASE_"`
	Cart     Cart     `envPrefix:"CART_"`
	Redis    Redis    `envPrefix:"REDIS_"`
	Telegram Telegram `envPrefix:"TELEGRAM_"`
	Geo      Geo      `envPrefix:"GEO_"`
	Checkout Checkout `envPrefix:"CHECKOUT_"`
	Session  Session  `envPrefix:"SESSION_"`

	VisitorIdleTTL time.Duration `env:"VISITOR_IDLE_TTL" envDefault:"30m"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // sqlite, mysql
	URL    string `env:"URL" envDefault:"storefront.db"`
}

type Cart struct {
	Backend string `env:"BACKEND" envDefault:"database"` // database, redis
}

type Redis struct {
	Addr     string        `env:"ADDR" envDefault:"localhost:6379"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	CartTTL  time.Duration `env:"CART_TTL" envDefault:"720h"`
}

type Telegram struct {
	BaseApiURL string `env:"API_URL" envDefault:"https://api.telegram.org"`
	BotToken   string `env:"BOT_TOKEN"`
	ChatID     string `env:"CHAT_ID"`
}

type Geo struct {
	BaseApiURL string `env:"API_URL" envDefault:"https://ipapi.co"`
}

type Checkout struct {
	ProcessingDelay time.Duration `env:"PROCESSING_DELAY" envDefault:"1500ms"`
	ChatURL         string        `env:"CHAT_URL" envDefault:"https://t.me/QuycanSoftware"`
}

type Session struct {
	Secret string        `env:"SECRET"`
	TTL    time.Duration `env:"TTL" envDefault:"168h"`
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

func (c *Config) IsProduction() bool {
	return c.Environment.Name == "production"
}
