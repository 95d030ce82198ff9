package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	PersistenceSync PersistenceSync `mapstructure:",squash"`
	Cors            Cors            `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host              string        `mapstructure:"host"`
	Port              string        `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Path     string `mapstructure:"database_path"` // Arquivo local do SQLite
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	SSLMode  string `mapstructure:"database_sslmode"`
}

type PersistenceSync struct {
	CronSchedule string `mapstructure:"persistence_sync_cron"`
	Enabled      bool   `mapstructure:"persistence_sync_enabled"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("READ_HEADER_TIMEOUT", "2s")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "15s")

	viper.SetDefault("DATABASE_DRIVER", DriverSQLite)
	viper.SetDefault("DATABASE_PATH", "data/customer-tracker.db")
	viper.SetDefault("DATABASE_URL", "localhost:5432/customer_tracker")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")

	// Reenvio das coleções que falharam ao salvar
	viper.SetDefault("PERSISTENCE_SYNC_CRON", "* * * * *") // A cada minuto
	viper.SetDefault("PERSISTENCE_SYNC_ENABLED", true)

	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Database.Resolve(); err != nil {
		return nil, err
	}

	return config, nil
}

// Resolve valida o driver e monta o DSN do PostgreSQL.
// Deve ser chamado de novo se Driver ou Path forem alterados.
func (d *Database) Resolve() error {
	switch d.Driver {
	case DriverSQLite:
		if d.Path == "" {
			return fmt.Errorf("config: DATABASE_PATH é obrigatório para o driver %s", d.Driver)
		}
	case DriverPostgres:
		d.DSN = fmt.Sprintf(
			"postgres://%s:%s@%s?sslmode=%s",
			d.User,
			d.Password,
			d.URL,
			d.SSLMode,
		)
	case DriverMemory:
	default:
		return fmt.Errorf("config: driver de banco desconhecido: %q", d.Driver)
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
