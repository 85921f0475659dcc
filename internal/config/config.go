package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer  HTTPServer `yaml:"http_server"`
	Postgres    Postgres   `yaml:"postgres"`
	Redis       Redis      `yaml:"redis"`
	JWT         JWT        `yaml:"jwt"`
	Minio       Minio      `yaml:"minio"`
	CatalogPath string     `yaml:"catalog_path" env:"CATALOG_PATH" env-default:"config/catalog.yaml"`
	CORS        CORS       `yaml:"cors"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8081"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	DBName   string `yaml:"dbname" env:"POSTGRES_DB"`
}

type Redis struct {
	Address  string        `yaml:"address" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env-default:"0"`
	TTL      time.Duration `yaml:"ttl" env-default:"24h"`
}

type JWT struct {
	// SecretKey empty disables the auth middleware (local env).
	SecretKey string `yaml:"secret_key" env:"JWT_SECRET"`
}

type Minio struct {
	Endpoint     string        `yaml:"endpoint" env-default:"minio:9000"`
	AccessKey    string        `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey    string        `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	UseSSL       bool          `yaml:"use_ssl"`
	AvatarBucket string        `yaml:"avatar_bucket" env-default:"avatars"`
	PresignTTL   time.Duration `yaml:"presign_ttl" env-default:"168h"`
}

type CORS struct {
	AllowOrigins []string `yaml:"allow_origins" env-default:"http://localhost:3000"`
}

func MustLoad() *Config {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("Can not read config file %s", err)
	}

	return &cfg
}
