package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento de sesión soportados.
const (
	SessionDriverFile   = "file"
	SessionDriverMemory = "memory"
	SessionDriverRedis  = "redis"
)

// Config agrupa la configuración del cliente (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	Console ConsoleConfig
	Reports ReportsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig backend REST al que habla el cliente.
type APIConfig struct {
	BaseURL        string // ej. http://localhost:8080/api
	TimeoutSeconds int
	Mock           bool // true = backend simulado en proceso (sin red)
}

// Timeout devuelve el timeout de red como time.Duration.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionConfig persistencia de la sesión local (equivalente a localStorage).
type SessionConfig struct {
	Driver       string // file | memory | redis
	Path         string // archivo JSON cuando Driver=file
	CacheVersion string // versión esperada del esquema persistido; si cambia se limpia todo
}

// RedisConfig conexión para Driver=redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// ConsoleConfig consola HTTP local.
type ConsoleConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c ConsoleConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ReportsConfig polling de reportes.
type ReportsConfig struct {
	PollSeconds int
}

// PollInterval intervalo de refresco de reportes.
func (c ReportsConfig) PollInterval() time.Duration {
	return time.Duration(c.PollSeconds) * time.Second
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, SESSION_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración desde una instancia de viper ya cargada (útil en tests).
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "gestion-cliente"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL:        strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:8080/api"), "/"),
			TimeoutSeconds: getInt(v, "API_TIMEOUT_SECONDS", 10),
			Mock:           getBool(v, "API_MOCK", false),
		},
		Session: SessionConfig{
			Driver:       strings.ToLower(getString(v, "SESSION_DRIVER", SessionDriverFile)),
			Path:         getString(v, "SESSION_PATH", defaultSessionPath()),
			CacheVersion: getString(v, "CACHE_VERSION", "1.0.1"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			Prefix:   getString(v, "REDIS_PREFIX", "gestion:"),
		},
		Console: ConsoleConfig{
			Host: getString(v, "CONSOLE_HOST", "127.0.0.1"),
			Port: getInt(v, "CONSOLE_PORT", 3000),
		},
		Reports: ReportsConfig{
			PollSeconds: getInt(v, "REPORTS_POLL_SECONDS", 5),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rechaza combinaciones que dejarían al cliente inutilizable.
func (c *Config) Validate() error {
	switch c.Session.Driver {
	case SessionDriverFile, SessionDriverMemory, SessionDriverRedis:
	default:
		return fmt.Errorf("config: SESSION_DRIVER inválido %q (file, memory, redis)", c.Session.Driver)
	}
	if c.Session.Driver == SessionDriverFile && c.Session.Path == "" {
		return fmt.Errorf("config: SESSION_PATH requerido con SESSION_DRIVER=file")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: API_TIMEOUT_SECONDS debe ser positivo")
	}
	if !c.API.Mock && c.API.BaseURL == "" {
		return fmt.Errorf("config: API_BASE_URL requerido")
	}
	if c.Reports.PollSeconds <= 0 {
		return fmt.Errorf("config: REPORTS_POLL_SECONDS debe ser positivo")
	}
	return nil
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".gestion", "session.json")
	}
	return filepath.Join(home, ".gestion", "session.json")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		if s, ok := v.Get(key).(string); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(s))
			if err != nil {
				return def
			}
			return b
		}
		return v.GetBool(key)
	}
	return def
}
