package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config groups the application configuration (read via Viper from env and optionally a file).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	AI      AIConfig
	JWT     JWTConfig
	Auth    AuthConfig
	Company CompanyConfig
}

// AppConfig general application configuration.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig HTTP server configuration.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig file-based persistence layout. Everything lives on the local
// filesystem: customer folders, inventory workbooks, the sales ledger, the
// document counters and the generated bills.
type StorageConfig struct {
	DataDir     string // customer folders ("001 Nandu Singh_687480874343")
	ChassisFile string // chassis inventory workbook (.xlsx)
	BatteryFile string // battery inventory workbook (.xlsx)
	LedgerFile  string // append-only sales ledger workbook (.xlsx)
	CounterDir  string // one JSON counter file per document kind
	BillsDir    string // rendered bill PDFs
}

// AIConfig configuration for the document extraction service (Google Gemini).
type AIConfig struct {
	GeminiAPIKey   string
	GeminiModel    string // e.g. "gemini-1.5-flash"
	TimeoutSeconds int    // per extraction call; one attempt, no retries
}

// JWTConfig JWT configuration.
type JWTConfig struct {
	Secret     string
	Expiration int // minutes
	Issuer     string
}

// AuthConfig single-operator credentials. The password is stored as a bcrypt
// hash so the plaintext never appears in env files.
type AuthConfig struct {
	OperatorName         string
	OperatorPasswordHash string
}

// CompanyConfig static seller details printed on every bill.
type CompanyConfig struct {
	Name          string
	GSTIN         string
	Address       string
	Phone         string
	Email         string
	StateCode     string // two-digit GST state code of the seller
	HSNCode       string // HSN for e-rickshaw vehicles
	InvoicePrefix string // e.g. "ME/GST"
}

// Load reads configuration from environment variables (and optionally a file).
// Env vars take priority. Expected names: APP_ENV, HTTP_PORT, GEMINI_API_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optional config file (.env or config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignore if missing

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignore if missing

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "minato-backoffice"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			DataDir:     getString(v, "DATA_DIR", "./data/customers"),
			ChassisFile: getString(v, "CHASSIS_FILE", "./data/chassis_inventory.xlsx"),
			BatteryFile: getString(v, "BATTERY_FILE", "./data/battery_inventory.xlsx"),
			LedgerFile:  getString(v, "LEDGER_FILE", "./data/sales_ledger.xlsx"),
			CounterDir:  getString(v, "COUNTER_DIR", "./data/counters"),
			BillsDir:    getString(v, "BILLS_DIR", "./generated_bills"),
		},
		AI: AIConfig{
			GeminiAPIKey:   getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:    getString(v, "GEMINI_MODEL", "gemini-1.5-flash"),
			TimeoutSeconds: getInt(v, "GEMINI_TIMEOUT_SECONDS", 30),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "minato-backoffice"),
		},
		Auth: AuthConfig{
			OperatorName:         getString(v, "OPERATOR_NAME", "operator"),
			OperatorPasswordHash: getString(v, "OPERATOR_PASSWORD_HASH", ""),
		},
		Company: CompanyConfig{
			Name:          getString(v, "COMPANY_NAME", "MINATO ENTERPRISES"),
			GSTIN:         getString(v, "COMPANY_GSTIN", ""),
			Address:       getString(v, "COMPANY_ADDRESS", ""),
			Phone:         getString(v, "COMPANY_PHONE", ""),
			Email:         getString(v, "COMPANY_EMAIL", ""),
			StateCode:     getString(v, "COMPANY_STATE_CODE", "20"),
			HSNCode:       getString(v, "COMPANY_HSN_CODE", "87038040"),
			InvoicePrefix: getString(v, "INVOICE_PREFIX", "ME/GST"),
		},
	}

	return cfg, nil
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
