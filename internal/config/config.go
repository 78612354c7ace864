package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port       string `envconfig:"PORT" default:"8080"`
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	JWTSecret  string `envconfig:"JWT_SECRET" required:"true"`

	// Operator (admin) login. The secret key routes a login request to the
	// admin credential check instead of the tenant table.
	AdminEmail     string `envconfig:"ADMIN_EMAIL" required:"true"`
	AdminPassword  string `envconfig:"ADMIN_PASSWORD" required:"true"`
	AdminSecretKey string `envconfig:"ADMIN_SECRET_KEY" required:"true"`

	// Subscription policy. MonthlyPrice is in TZS and is never taken from
	// client input when a payment is submitted.
	TrialDays        int    `envconfig:"TRIAL_DAYS" default:"30"`
	SubscriptionDays int    `envconfig:"SUBSCRIPTION_DAYS" default:"30"`
	MonthlyPrice     string `envconfig:"MONTHLY_PRICE" default:"15000"`
	PayeeNumber      string `envconfig:"PAYEE_NUMBER" default:"+255785614335"`

	// SMS provider. With an empty API key the client runs in mock mode and
	// only logs outbound messages.
	SMSAPIKey   string `envconfig:"SMS_API_KEY"`
	SMSUsername string `envconfig:"SMS_USERNAME" default:"sandbox"`
	SMSSenderID string `envconfig:"SMS_SENDER_ID" default:"TAKWIMU"`
	SMSBaseURL  string `envconfig:"SMS_BASE_URL" default:"https://api.africastalking.com/version1"`

	// Product photo storage (S3-compatible). Photos are disabled when S3_URL
	// is empty.
	S3URL       string `envconfig:"S3_URL"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"product-photos"`
	S3Region    string `envconfig:"S3_REGION" default:"auto"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`

	// Barcode lookup collaborators.
	BarcodeFoodBaseURL    string `envconfig:"BARCODE_FOOD_BASE_URL" default:"https://world.openfoodfacts.org"`
	BarcodeCatalogBaseURL string `envconfig:"BARCODE_CATALOG_BASE_URL" default:"https://api.upcitemdb.com"`
	BarcodeTimeoutSec     int    `envconfig:"BARCODE_TIMEOUT_SEC" default:"5"`
	BarcodeRateLimit      int    `envconfig:"BARCODE_RATE_LIMIT" default:"30"`
	BarcodeRateWindowSec  int    `envconfig:"BARCODE_RATE_WINDOW_SEC" default:"60"`

	// SMS notifier worker settings
	SMSQueueName           string `envconfig:"SMS_QUEUE_NAME" default:"sms_queue"`
	SMSPollTimeoutSec      int    `envconfig:"SMS_POLL_TIMEOUT_SEC" default:"30"`
	SMSPollMaxMsg          int    `envconfig:"SMS_POLL_MAX_MSG" default:"1"`
	SMSMaxRetries          int    `envconfig:"SMS_MAX_RETRIES" default:"3"`
	SMSBackoffInitialSec   int    `envconfig:"SMS_BACKOFF_INITIAL_SEC" default:"1"`
	SMSBackoffMaxSec       int    `envconfig:"SMS_BACKOFF_MAX_SEC" default:"30"`
	SMSDeadLetterQueueName string `envconfig:"SMS_DEAD_LETTER_QUEUE_NAME" default:"sms_queue_dlq"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
