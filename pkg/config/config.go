package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (lida via Viper de env e, opcionalmente, de arquivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Scheduler SchedulerConfig
}

// AppConfig configuração geral.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuração do PostgreSQL.
// Se DatabaseURL não estiver vazio, é usado como connection string completo (ex. DATABASE_URL do Supabase).
type DBConfig struct {
	DatabaseURL      string
	Host             string
	Port             int
	User             string
	Password         string
	DBName           string
	SSLMode          string
	QueryTimeout     time.Duration // limite por comando SQL
	MigrateOnStart   bool
	MigrationsSource string // vazio = migrações embutidas
	MaxConns         int    // teto do pool compartilhado por repositórios e migrações
	MinConns         int
	ForceIPv4        bool // Postgres gerenciado sem rota IPv6 a partir do container
}

// ConnectionString devolve DATABASE_URL se definido; caso contrário o DSN montado.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devolve o connection string com URL encoding para caracteres especiais na senha.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuração de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins string
	SwaggerEnabled bool
	SwaggerFile    string
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig canal de notificações em tempo real. Desabilitado = notificações só em log.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// StorageConfig armazenamento S3-compatível (AWS S3, MinIO) para arquivos de fornecedores.
type StorageConfig struct {
	Enabled           bool
	Endpoint          string
	Region            string
	Bucket            string
	AccessKey         string
	SecretKey         string
	UseSSL            bool
	UsePathStyle      bool
	PresignExpiration time.Duration
}

// SchedulerConfig tarefas periódicas.
type SchedulerConfig struct {
	Enabled       bool
	RecurringCron string // geração de despesas recorrentes
	Timezone      string
}

// Load lê a configuração de variáveis de ambiente (e opcionalmente de arquivo).
// Variáveis de ambiente têm prioridade. Nomes: APP_ENV, DB_HOST, JWT_SECRET, REDIS_ADDR etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // arquivo opcional

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "barber-analytics-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL:      getString(v, "DATABASE_URL", ""),
			Host:             getString(v, "DB_HOST", "localhost"),
			Port:             getInt(v, "DB_PORT", 5432),
			User:             getString(v, "DB_USER", "postgres"),
			Password:         getString(v, "DB_PASSWORD", ""),
			DBName:           getString(v, "DB_NAME", "barber_analytics"),
			SSLMode:          getString(v, "DB_SSLMODE", "disable"),
			QueryTimeout:     time.Duration(getInt(v, "DB_QUERY_TIMEOUT_SECONDS", 10)) * time.Second,
			MigrateOnStart:   getBool(v, "DB_MIGRATE_ON_START", false),
			MigrationsSource: getString(v, "DB_MIGRATIONS_SOURCE", ""),
			MaxConns:         getInt(v, "DB_MAX_CONNS", 10),
			MinConns:         getInt(v, "DB_MIN_CONNS", 1),
			ForceIPv4:        getBool(v, "DB_FORCE_IPV4", false),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "barber-analytics"),
		},
		HTTP: HTTPConfig{
			Host:           getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:           getInt(v, "HTTP_PORT", 8080),
			AllowedOrigins: getString(v, "HTTP_ALLOWED_ORIGINS", "*"),
			SwaggerEnabled: getBool(v, "SWAGGER_ENABLED", false),
			SwaggerFile:    getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Redis: RedisConfig{
			Enabled:  getBool(v, "REDIS_ENABLED", false),
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			Prefix:   getString(v, "REDIS_PREFIX", "barber"),
		},
		Storage: StorageConfig{
			Enabled:           getBool(v, "STORAGE_ENABLED", false),
			Endpoint:          getString(v, "STORAGE_ENDPOINT", ""),
			Region:            getString(v, "STORAGE_REGION", "us-east-1"),
			Bucket:            getString(v, "STORAGE_BUCKET", "barber-files"),
			AccessKey:         getString(v, "STORAGE_ACCESS_KEY", ""),
			SecretKey:         getString(v, "STORAGE_SECRET_KEY", ""),
			UseSSL:            getBool(v, "STORAGE_USE_SSL", false),
			UsePathStyle:      getBool(v, "STORAGE_USE_PATH_STYLE", true),
			PresignExpiration: time.Duration(getInt(v, "STORAGE_PRESIGN_MINUTES", 15)) * time.Minute,
		},
		Scheduler: SchedulerConfig{
			Enabled:       getBool(v, "SCHEDULER_ENABLED", true),
			RecurringCron: getString(v, "SCHEDULER_RECURRING_CRON", "0 6 * * *"),
			Timezone:      getString(v, "SCHEDULER_TIMEZONE", "America/Sao_Paulo"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.App.Env == "production" && c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET é obrigatório em produção")
	}
	if c.DB.QueryTimeout <= 0 {
		return fmt.Errorf("config: DB_QUERY_TIMEOUT_SECONDS deve ser maior que 0")
	}
	if c.DB.MaxConns <= 0 || c.DB.MinConns < 0 || c.DB.MinConns > c.DB.MaxConns {
		return fmt.Errorf("config: DB_MIN_CONNS deve estar entre 0 e DB_MAX_CONNS (maior que 0)")
	}
	if c.Storage.Enabled && (c.Storage.AccessKey == "" || c.Storage.SecretKey == "") {
		return fmt.Errorf("config: STORAGE_ACCESS_KEY e STORAGE_SECRET_KEY são obrigatórios com storage habilitado")
	}
	return nil
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
			n, err := strconv.Atoi(v.GetString(key))
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
		b, err := strconv.ParseBool(v.GetString(key))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
