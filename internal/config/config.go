package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	S3 struct {
		Provider string `mapstructure:"provider"` // "s3" or "local"
		KeyID    string `mapstructure:"key_id"`
		AppKey   string `mapstructure:"app_key"`
		Region   string `mapstructure:"region"`
		Endpoint string `mapstructure:"endpoint"` // optional, for S3-compatibles
		Bucket   string `mapstructure:"bucket"`
		LocalDir string `mapstructure:"local_dir"`
	} `mapstructure:"s3"`
	Spotify struct {
		ClientID      string `mapstructure:"client_id"`
		ClientSecret  string `mapstructure:"client_secret"`
		ChartPlaylist string `mapstructure:"chart_playlist"`
	} `mapstructure:"spotify"`
	Genius struct {
		Token string `mapstructure:"token"`
	} `mapstructure:"genius"`
	Server struct {
		DownloadDir    string `mapstructure:"download_dir"`
		TimeoutSeconds int    `mapstructure:"http_timeout_seconds"`
		MetricsPort    string `mapstructure:"metrics_port"`
		APIPort        string `mapstructure:"api_port"`
	} `mapstructure:"server"`
}

func Load() *Config {
	viper.SetEnvPrefix("CHART")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Register keys
	viper.BindEnv("database.host")
	viper.BindEnv("database.port")
	viper.BindEnv("database.user")
	viper.BindEnv("database.password")
	viper.BindEnv("database.name")

	viper.BindEnv("s3.provider")
	viper.BindEnv("s3.key_id")
	viper.BindEnv("s3.app_key")
	viper.BindEnv("s3.region")
	viper.BindEnv("s3.endpoint")
	viper.BindEnv("s3.bucket")
	viper.BindEnv("s3.local_dir")

	viper.BindEnv("spotify.client_id")
	viper.BindEnv("spotify.client_secret")
	viper.BindEnv("spotify.chart_playlist")
	viper.BindEnv("genius.token")

	viper.BindEnv("server.download_dir")
	viper.BindEnv("server.http_timeout_seconds")
	viper.BindEnv("server.metrics_port")
	viper.BindEnv("server.api_port")

	// Defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "3306")
	viper.SetDefault("s3.provider", "s3")
	viper.SetDefault("s3.region", "us-east-1")
	viper.SetDefault("s3.local_dir", "./data")
	// Global Top 50, same chart the Spotify crawler always read
	viper.SetDefault("spotify.chart_playlist", "37i9dQZEVXbNG2KDcFcKOF")
	viper.SetDefault("server.download_dir", "./downloads")
	// No retries anywhere; the timeout is the only network safety net.
	viper.SetDefault("server.http_timeout_seconds", 10)
	viper.SetDefault("server.metrics_port", ":9091")
	viper.SetDefault("server.api_port", ":8080")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Config error: %s", err)
		} else {
			log.Println("Info: config.yaml not found, using Environment Variables only.")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	if cfg.Database.User == "" || cfg.Database.Name == "" {
		log.Fatal("Critical: database credentials missing (CHART_DATABASE_USER / CHART_DATABASE_NAME)")
	}

	return &cfg
}
