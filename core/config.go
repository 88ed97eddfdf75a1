package core

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends
const (
	StoreSQL    = "sql"
	StoreFiles  = "files"
	StoreBolt   = "bolt"
	StoreMemory = "memory"
)

type (
	Config struct {
		AppName      string
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		Debug        bool
		TestMode     bool
		RollbarToken string
		Server       ServerConfig
		Store        StoreConfig
	}

	ServerConfig struct {
		Host            string
		Port            string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	StoreConfig struct {
		Backend     string
		DatabaseURL string // empty: local sqlite file LocalDatabase
		HomeworkDir string
		BoltPath    string
	}
)

// LocalDatabase is the sqlite file used when no DATABASE_URL is configured.
const LocalDatabase = "homework.db"

// Address is the host-wide listen address of the web server.
func (sc ServerConfig) Address() string {
	return net.JoinHostPort(sc.Host, sc.Port)
}

// NewConfig reads the configuration once from the process environment,
// after loading `config/.env.<env>` if it exists.
func NewConfig() *Config {
	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	loadDotEnv(env)

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("app_name", "Homework")
	v.SetDefault("build", "develop")
	v.SetDefault("debug", env == "DEV")
	v.SetDefault("test_mode", env == "TEST")
	v.SetDefault("rollbar_token", "")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "5000")
	v.SetDefault("debug_host", "0.0.0.0:4000")
	v.SetDefault("shutdown_timeout", 5*time.Second)
	v.SetDefault("store", StoreSQL)
	v.SetDefault("database_url", "")
	v.SetDefault("homework_dir", "homework")
	v.SetDefault("bolt_path", "homework.bolt")
	v.AutomaticEnv()

	return &Config{
		AppName:      v.GetString("app_name"),
		Env:          env,
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("test_mode"),
		RollbarToken: v.GetString("rollbar_token"),
		Server: ServerConfig{
			Host:            v.GetString("host"),
			Port:            v.GetString("port"),
			DebugHost:       v.GetString("debug_host"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Store: StoreConfig{
			Backend:     strings.ToLower(CleanString(v.GetString("store"))),
			DatabaseURL: CleanString(v.GetString("database_url")),
			HomeworkDir: v.GetString("homework_dir"),
			BoltPath:    v.GetString("bolt_path"),
		},
	}
}

// load .env if it exists (ignore if it does not)
func loadDotEnv(env string) {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd: %v", err)
	}
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
}
