package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string

	JWTSecret string

	SMSProvider       string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioFromNumber  string
	SMSRatePerSecond  float64
	SMSRateBurst      int
	SMSSendTimeout    time.Duration
	SMSClaimTTL       time.Duration
	SMSLocale         string
	SMSTemplateDir    string
	SMSUnmappedPolicy string

	DispatchConcurrency int
	DispatchLockTTL     time.Duration

	KafkaBrokers  []string
	KafkaTopic    string
	KafkaGroupID  string
	SweepInterval time.Duration

	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOArchiveBucket string
	MinIOUseSSL        bool

	ResendAPIKey string
	FromEmail    string
	AlertEmail   string

	CORSOrigins string
	MetricsPort string
}

// Load reads configuration from the environment and, when CONFIG_FILE is
// set, a YAML file whose keys use the same names in lower case.
func Load() *Config {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		_ = v.ReadInConfig()
	}

	return &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENVIRONMENT"),

		DatabaseURL: v.GetString("DATABASE_URL"),

		RedisURL: v.GetString("REDIS_URL"),

		JWTSecret: v.GetString("JWT_SECRET"),

		SMSProvider:       v.GetString("SMS_PROVIDER"),
		TwilioAccountSID:  v.GetString("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   v.GetString("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:  v.GetString("TWILIO_FROM_NUMBER"),
		SMSRatePerSecond:  v.GetFloat64("SMS_RATE_PER_SECOND"),
		SMSRateBurst:      v.GetInt("SMS_RATE_BURST"),
		SMSSendTimeout:    v.GetDuration("SMS_SEND_TIMEOUT"),
		SMSClaimTTL:       v.GetDuration("SMS_CLAIM_TTL"),
		SMSLocale:         v.GetString("SMS_LOCALE"),
		SMSTemplateDir:    v.GetString("SMS_TEMPLATE_DIR"),
		SMSUnmappedPolicy: v.GetString("SMS_UNMAPPED_CATEGORY_POLICY"),

		DispatchConcurrency: v.GetInt("DISPATCH_CONCURRENCY"),
		DispatchLockTTL:     v.GetDuration("DISPATCH_LOCK_TTL"),

		KafkaBrokers:  splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:    v.GetString("SMS_DISPATCH_TOPIC"),
		KafkaGroupID:  v.GetString("SMS_DISPATCH_GROUP"),
		SweepInterval: v.GetDuration("SMS_SWEEP_INTERVAL"),

		MinIOEndpoint:      v.GetString("MINIO_ENDPOINT"),
		MinIOAccessKey:     v.GetString("MINIO_ACCESS_KEY"),
		MinIOSecretKey:     v.GetString("MINIO_SECRET_KEY"),
		MinIOArchiveBucket: v.GetString("MINIO_ARCHIVE_BUCKET"),
		MinIOUseSSL:        v.GetBool("MINIO_USE_SSL"),

		ResendAPIKey: v.GetString("RESEND_API_KEY"),
		FromEmail:    v.GetString("FROM_EMAIL"),
		AlertEmail:   v.GetString("ALERT_EMAIL"),

		CORSOrigins: v.GetString("CORS_ORIGINS"),
		MetricsPort: v.GetString("METRICS_PORT"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_URL", "redis://localhost:6379")
	v.SetDefault("JWT_SECRET", "")

	v.SetDefault("SMS_PROVIDER", "mock")
	v.SetDefault("TWILIO_ACCOUNT_SID", "")
	v.SetDefault("TWILIO_AUTH_TOKEN", "")
	v.SetDefault("TWILIO_FROM_NUMBER", "")
	v.SetDefault("SMS_RATE_PER_SECOND", 10)
	v.SetDefault("SMS_RATE_BURST", 5)
	v.SetDefault("SMS_SEND_TIMEOUT", 15*time.Second)
	v.SetDefault("SMS_CLAIM_TTL", 5*time.Minute)
	v.SetDefault("SMS_LOCALE", "en")
	v.SetDefault("SMS_TEMPLATE_DIR", "")
	v.SetDefault("SMS_UNMAPPED_CATEGORY_POLICY", "allow")

	v.SetDefault("DISPATCH_CONCURRENCY", 4)
	v.SetDefault("DISPATCH_LOCK_TTL", 2*time.Minute)

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("SMS_DISPATCH_TOPIC", "sms.dispatch")
	v.SetDefault("SMS_DISPATCH_GROUP", "sms-worker")
	v.SetDefault("SMS_SWEEP_INTERVAL", time.Duration(0))

	v.SetDefault("MINIO_ENDPOINT", "")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_ARCHIVE_BUCKET", "unistay-sms-archive")
	v.SetDefault("MINIO_USE_SSL", false)

	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("FROM_EMAIL", "noreply@example.com")
	v.SetDefault("ALERT_EMAIL", "")

	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("METRICS_PORT", "9102")
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
