package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
		MigrationsDir      string   `mapstructure:"migrations_dir"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		MaxConns int32  `mapstructure:"max_conns"`
	} `mapstructure:"database"`

	Redis RedisConfig `mapstructure:"redis"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Logging struct {
		File  string `mapstructure:"file"`
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`

	Lockers struct {
		PerKind int `mapstructure:"per_kind"` // seeded lockers per floor/type
	} `mapstructure:"lockers"`

	Items struct {
		DefaultLimit int `mapstructure:"default_limit"`
	} `mapstructure:"items"`

	Backup BackupConfig `mapstructure:"backup"`

	Printer struct {
		URL            string `mapstructure:"url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"printer"`

	Admin struct {
		Email    string `mapstructure:"email"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"admin"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// BackupConfig controls pg_dump backups and their optional S3 upload
type BackupConfig struct {
	Dir             string `mapstructure:"dir"`
	RetentionDays   int    `mapstructure:"retention_days"`
	IntervalMinutes int    `mapstructure:"interval_minutes"` // 0 disables the schedule
	PgDumpPath      string `mapstructure:"pg_dump_path"`
	S3              struct {
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		Bucket    string `mapstructure:"bucket"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Prefix    string `mapstructure:"prefix"`
	} `mapstructure:"s3"`
}

// S3Enabled reports whether backups should be uploaded
func (b BackupConfig) S3Enabled() bool {
	return b.S3.Bucket != "" && b.S3.AccessKey != "" && b.S3.SecretKey != ""
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	cfg, err := LoadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET not found in environment or config file")
	}

	return cfg
}

// LoadFile reads an optional YAML file, applies defaults and environment overrides
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	// Auto bind environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found at %s, using defaults", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Authorization", "Content-Type"})
	v.SetDefault("server.migrations_dir", "migrations")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "cleanguard")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("jwt.expiration_hours", 12)
	v.SetDefault("jwt.issuer", "cleanguard")
	v.SetDefault("logging.level", "info")
	v.SetDefault("lockers.per_kind", 60)
	v.SetDefault("items.default_limit", 10)
	v.SetDefault("backup.dir", "Backup")
	v.SetDefault("backup.retention_days", 7)
	v.SetDefault("backup.interval_minutes", 24*60)
	v.SetDefault("backup.pg_dump_path", "pg_dump")
	v.SetDefault("backup.s3.region", "auto")
	v.SetDefault("backup.s3.prefix", "cleanguard/")
	v.SetDefault("printer.url", "http://127.0.0.1:5000")
	v.SetDefault("printer.timeout_seconds", 10)
	v.SetDefault("admin.name", "Administrator")
}

func applyEnvOverrides(cfg *Config) {
	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	}

	// K8s sets REDIS_SERVICE_HOST and REDIS_SERVICE_PORT for services
	if host := os.Getenv("REDIS_SERVICE_HOST"); host != "" {
		port := os.Getenv("REDIS_SERVICE_PORT")
		if port == "" {
			port = "6379"
		}
		cfg.Redis.Addr = host + ":" + port
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}

	if key := os.Getenv("BACKUP_S3_ACCESS_KEY"); key != "" {
		cfg.Backup.S3.AccessKey = key
	}
	if secret := os.Getenv("BACKUP_S3_SECRET_KEY"); secret != "" {
		cfg.Backup.S3.SecretKey = secret
	}

	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		cfg.Admin.Email = email
	}
	if pass := os.Getenv("ADMIN_PASSWORD"); pass != "" {
		cfg.Admin.Password = pass
	}
}

// DSN builds the PostgreSQL connection string
func (c *Config) DSN() string {
	return "postgres://" + c.Database.User + ":" + c.Database.Password + "@" +
		c.Database.Host + ":" + strconv.Itoa(c.Database.Port) + "/" + c.Database.Name
}
