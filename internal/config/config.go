package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is read once at startup. Every field has a local-friendly default so the API
// boots against DynamoDB Local with no env at all.
type Config struct {
	Port      string
	LogLevel  string
	LogPretty bool

	AWS    AWSConfig
	Tables TableNames

	RedisAddr       string
	RedisPassword   string
	PricingCacheTTL time.Duration

	PubSubProjectID string
	PubSubTopic     string

	InvoiceAPIURL     string
	TaxDocumentAPIURL string
	DocumentsAPIToken string
	RemitoDir         string
	DocumentsTimeout  time.Duration

	QuoteExpiryInterval time.Duration

	MercadoPago MercadoPagoConfig
}

type AWSConfig struct {
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	DynamoDBEndpoint string
}

type TableNames struct {
	Quotes         string
	Orders         string
	Payments       string
	Checks         string
	PricingConfigs string
}

type MercadoPagoConfig struct {
	AccessToken     string
	Mock            bool
	TestPayerEmail  string
	TestPayerUserID string
}

func Load() Config {
	return Config{
		Port:      getenvDefault("PORT", "8080"),
		LogLevel:  getenvDefault("LOG_LEVEL", "info"),
		LogPretty: getenvBool("LOG_PRETTY", false),
		AWS: AWSConfig{
			Region:           getenvDefault("AWS_REGION", "us-east-1"),
			AccessKeyID:      getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey:  getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			DynamoDBEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),
		},
		Tables: TableNames{
			Quotes:         getenvDefault("QUOTES_TABLE", "quotes"),
			Orders:         getenvDefault("ORDERS_TABLE", "orders"),
			Payments:       getenvDefault("PAYMENTS_TABLE", "payments"),
			Checks:         getenvDefault("CHECKS_TABLE", "checks"),
			PricingConfigs: getenvDefault("PRICING_CONFIGS_TABLE", "pricing_configs"),
		},
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		PricingCacheTTL:     getenvDuration("PRICING_CACHE_TTL", time.Minute),
		PubSubProjectID:     os.Getenv("PUBSUB_PROJECT_ID"),
		PubSubTopic:         getenvDefault("PUBSUB_TOPIC", "cartonera-events"),
		InvoiceAPIURL:       os.Getenv("INVOICE_API_URL"),
		TaxDocumentAPIURL:   os.Getenv("TAX_DOCUMENT_API_URL"),
		DocumentsAPIToken:   os.Getenv("DOCUMENTS_API_TOKEN"),
		RemitoDir:           getenvDefault("REMITO_DIR", "remitos"),
		DocumentsTimeout:    getenvDuration("DOCUMENTS_TIMEOUT", 10*time.Second),
		QuoteExpiryInterval: getenvDuration("QUOTE_EXPIRY_INTERVAL", time.Hour),
		MercadoPago: MercadoPagoConfig{
			AccessToken:     os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
			Mock:            getenvBool("PAYMENT_GATEWAY_MOCK", false),
			TestPayerEmail:  os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL"),
			TestPayerUserID: os.Getenv("MERCADOPAGO_TEST_PAYER_USER_ID"),
		},
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getenvDuration accepts Go durations ("90s") or a bare number of seconds.
func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
