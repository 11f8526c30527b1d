package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	API       APIConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Devserver DevserverConfig
}

// APIConfig содержит настройки подключения к удаленному бэкенду
type APIConfig struct {
	// BaseURL: адрес бэкенда студенческого приложения, например http://127.0.0.1:8000
	BaseURL string `mapstructure:"base_url"`

	// TimeoutSec: таймаут одного HTTP-запроса в секундах. По умолчанию 10.
	TimeoutSec int `mapstructure:"timeout_sec"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	// Для 'single', если не пуст, используется первый адрес из списка.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single' (для обратной совместимости).
	// Используется, если Mode="single" и Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	// MaxRetries: Максимальное количество попыток переподключения (-1 - бесконечно). По умолчанию 0 (без ретраев).
	MaxRetries int `mapstructure:"max_retries"`

	// MinRetryBackoff: Минимальный интервал между попытками (в миллисекундах). По умолчанию 8ms.
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`

	// MaxRetryBackoff: Максимальный интервал между попытками (в миллисекундах). По умолчанию 512ms.
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// CacheConfig содержит настройки кеширования снимков вопросов
type CacheConfig struct {
	// SnapshotTTLHrs: Время жизни снимка вопросов книги в часах. По умолчанию 24.
	SnapshotTTLHrs int `mapstructure:"snapshot_ttl_hrs"`
}

// DevserverConfig содержит настройки локального контрактного сервера
type DevserverConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`

	// PlaceholderQuestions: сколько вопросов-заглушек генерирует /api/generate-lesson/
	PlaceholderQuestions int `mapstructure:"placeholder_questions"`

	Database DatabaseConfig `mapstructure:"database"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RequestTimeout возвращает таймаут HTTP-запроса как time.Duration
func (a *APIConfig) RequestTimeout() time.Duration {
	if a.TimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(a.TimeoutSec) * time.Second
}

// SnapshotTTL возвращает время жизни снимка как time.Duration
func (c *CacheConfig) SnapshotTTL() time.Duration {
	if c.SnapshotTTLHrs <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.SnapshotTTLHrs) * time.Hour
}

// Load загружает конфигурацию из файла
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Устанавливаем значения по умолчанию
	vip.SetDefault("api.base_url", "http://127.0.0.1:8000")
	vip.SetDefault("api.timeout_sec", 10)
	vip.SetDefault("cache.snapshot_ttl_hrs", 24)
	vip.SetDefault("devserver.port", "8000")
	vip.SetDefault("devserver.read_timeout", 10)
	vip.SetDefault("devserver.write_timeout", 10)
	vip.SetDefault("devserver.placeholder_questions", 5)

	// 2. Привязываем переменные окружения ЯВНО
	// Привязка для секции API
	vip.BindEnv("api.base_url", "STUDDY_BUDDY_API_URL")
	vip.BindEnv("api.timeout_sec", "STUDDY_BUDDY_API_TIMEOUT_SEC")

	// Привязка для секции Redis
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS") // Для массива строк
	vip.BindEnv("redis.addr", "REDIS_ADDR")   // Для одиночной строки
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")
	vip.BindEnv("redis.max_retries", "REDIS_MAX_RETRIES")
	vip.BindEnv("redis.min_retry_backoff", "REDIS_MIN_RETRY_BACKOFF")
	vip.BindEnv("redis.max_retry_backoff", "REDIS_MAX_RETRY_BACKOFF")

	// Привязка для секции Cache
	vip.BindEnv("cache.snapshot_ttl_hrs", "CACHE_SNAPSHOT_TTL_HRS")

	// Привязка для секции Devserver
	vip.BindEnv("devserver.port", "DEVSERVER_PORT")
	vip.BindEnv("devserver.read_timeout", "DEVSERVER_READ_TIMEOUT")
	vip.BindEnv("devserver.write_timeout", "DEVSERVER_WRITE_TIMEOUT")
	vip.BindEnv("devserver.placeholder_questions", "DEVSERVER_PLACEHOLDER_QUESTIONS")
	vip.BindEnv("devserver.database.host", "DATABASE_HOST")
	vip.BindEnv("devserver.database.port", "DATABASE_PORT")
	vip.BindEnv("devserver.database.user", "DATABASE_USER")
	vip.BindEnv("devserver.database.password", "DATABASE_PASSWORD")
	vip.BindEnv("devserver.database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("devserver.database.sslmode", "DATABASE_SSLMODE")

	// 3. Устанавливаем путь к файлу конфигурации
	if configPath != "" {
		vip.SetConfigFile(configPath)
		// 4. Пытаемся прочитать файл конфигурации (не страшно, если его нет, т.к. есть BindEnv)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 5. Анмаршалим конфигурацию (Viper объединит значения из файла и привязанных env vars)
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Логирование конфигурации (только в debug режиме)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("API Base URL: %s", cfg.API.BaseURL)
		log.Printf("API Timeout (sec): %d", cfg.API.TimeoutSec)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("Devserver Port: %s", cfg.Devserver.Port)
		log.Printf("Devserver DB Host: %s", cfg.Devserver.Database.Host)
		log.Printf("-----------------------------------------")
	}

	// 7. Проверка обязательных параметров
	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("API base URL is required in config (check STUDDY_BUDDY_API_URL env var)")
	}

	return &cfg, nil
}
