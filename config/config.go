package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	AppName  string `mapstructure:"APP_NAME"`
	HTTPAddr string `mapstructure:"HTTP_ADDR"`

	MySQLDSN  string `mapstructure:"MYSQL_DSN"`
	RedisAddr string `mapstructure:"REDIS_ADDR"`

	// SessionTTLHours bounds how long an idle session stays valid.
	SessionTTLHours int `mapstructure:"SESSION_TTL_HOURS"`

	// CORSOrigin is the browser origin allowed to send credentialed requests.
	CORSOrigin string `mapstructure:"CORS_ORIGIN"`

	// SeedDemoUser creates the demo shopkeeper account on startup.
	SeedDemoUser    bool   `mapstructure:"SEED_DEMO_USER"`
	DemoUsername    string `mapstructure:"DEMO_USERNAME"`
	DemoPassword    string `mapstructure:"DEMO_PASSWORD"`
	DemoDisplayName string `mapstructure:"DEMO_DISPLAY_NAME"`
}

// Load reads configuration from an optional app.env file in path, the
// environment, and built-in local-dev defaults, in increasing precedence
// of environment over file.
func Load(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("APP_NAME", "dukapro")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("MYSQL_DSN", "root:root@tcp(localhost:3306)/dukapro?parseTime=true")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("CORS_ORIGIN", "http://localhost:3003")
	viper.SetDefault("SEED_DEMO_USER", false)
	viper.SetDefault("DEMO_USERNAME", "admin")
	viper.SetDefault("DEMO_PASSWORD", "admin123")
	viper.SetDefault("DEMO_DISPLAY_NAME", "Admin User")

	var cfg Config
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, err
		}
	}

	err := viper.Unmarshal(&cfg)
	return cfg, err
}
