package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(Load),
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	Signer SignerConfig

	// SchemaPath overrides the embedded Facturae XSD when set.
	SchemaPath string
}

// SignerConfig describes how the external Java signing program is invoked.
type SignerConfig struct {
	JavaBin string
	Class   string
	// LibDir holds the signer's jar dependencies; every *.jar inside is put
	// on the classpath.
	LibDir  string
	WorkDir string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "facturae"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		DBType:        getenv("DATABASE_TYPE", "postgres"),
		DBHost:        getenv("DATABASE_HOST", "localhost"),
		DBPort:        getenv("DATABASE_PORT", "5432"),
		DBName:        getenv("DATABASE_NAME", "facturae"),
		DBUser:        getenv("DATABASE_USER", "postgres"),
		DBPassword:    getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:     getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn: getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn: getenvInt("DATABASE_MAX_OPEN_CONN", 10),

		Signer: SignerConfig{
			JavaBin: getenv("FACTURAE_JAVA_BIN", "java"),
			Class:   getenv("FACTURAE_SIGNER_CLASS", "facturae.tools.Signer"),
			LibDir:  getenv("FACTURAE_SIGNER_LIB_DIR", "java/lib"),
			WorkDir: getenv("FACTURAE_SIGNER_WORK_DIR", "java"),
		},

		SchemaPath: strings.TrimSpace(getenv("FACTURAE_XSD_PATH", "")),
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
