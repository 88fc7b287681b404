package configs

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type RESTconfig struct {
	PORT string
}

type ApiClientConfig struct {
	BaseURL string
	// PageSize - limit для списка объявлений.
	PageSize int
}

type SessionConfig struct {
	// Key подписывает cookie сессии.
	Key          string
	CSRFKey      string
	CookieSecure bool
	MaxAge       time.Duration
	// File - где CLI хранит токен.
	File string
}

type CacheConfig struct {
	Backend       string // memory | redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type SupportConfig struct {
	Email string
	Name  string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName            string
	Rest               RESTconfig
	ApiClient          ApiClientConfig
	Session            SessionConfig
	Cache              CacheConfig
	Support            SupportConfig
	CORSAllowedOrigins []string
	FluentBit          FluentBitConfig
	StdoutLogger       StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Файл .env необязателен: без него используются переменные процесса и значения по умолчанию.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath...)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using process environment.", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "apnadera-frontend")
	cfg.Rest.PORT = getEnvAsString("PORT", "8080")

	cfg.ApiClient.BaseURL = strings.TrimRight(getEnvAsString("API_BASE_URL", "http://localhost:5002"), "/")
	cfg.ApiClient.PageSize = getEnvAsInt("PAGE_SIZE", 12)
	if cfg.ApiClient.PageSize <= 0 {
		cfg.ApiClient.PageSize = 12
	}

	cfg.Session.Key = getEnvAsString("SESSION_KEY", "")
	cfg.Session.CSRFKey = getEnvAsString("CSRF_KEY", "")
	cfg.Session.CookieSecure = getEnvAsBool("COOKIE_SECURE", false)
	// с COOKIE_SECURE считаем окружение боевым: ключи по умолчанию недопустимы
	if cfg.Session.CookieSecure {
		if cfg.Session.Key == "" {
			return nil, errors.New("SESSION_KEY must be set when COOKIE_SECURE is true")
		}
		if cfg.Session.CSRFKey == "" {
			return nil, errors.New("CSRF_KEY must be set when COOKIE_SECURE is true")
		}
	}
	if cfg.Session.Key == "" {
		log.Println("WARNING: SESSION_KEY is not set. Using an insecure development key.")
		cfg.Session.Key = "apnadera-dev-session-key-change-me"
	}
	cfg.Session.MaxAge = time.Duration(getEnvAsInt("SESSION_MAX_AGE_HOURS", 24*7)) * time.Hour
	cfg.Session.File = getEnvAsString("SESSION_FILE", defaultSessionFile())

	cfg.Cache.Backend = strings.ToLower(getEnvAsString("CACHE_BACKEND", "memory"))
	if cfg.Cache.Backend == "redis" {
		cfg.Cache.RedisAddr = getEnvAsString("REDIS_ADDR", "localhost:6379")
		cfg.Cache.RedisPassword = getEnvAsString("REDIS_PASSWORD", "")
		cfg.Cache.RedisDB = getEnvAsInt("REDIS_DB", 0)
	}

	cfg.Support.Email = getEnvAsString("SUPPORT_EMAIL", "support@apnadera.com")
	cfg.Support.Name = getEnvAsString("SUPPORT_NAME", "ApnaDera Support")

	cfg.CORSAllowedOrigins = splitList(getEnvAsString("CORS_ALLOWED_ORIGINS", "http://localhost:5173"))

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "info")

	return cfg, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".apnadera-session.json"
	}
	return dir + string(os.PathSeparator) + "apnadera" + string(os.PathSeparator) + "session.json"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
