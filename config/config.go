package config

import (
	"log"
	"os"
	"strconv"
)

const (
	DefaultPort                = "8000"
	DefaultTokenExpiryMin      = 15
	DefaultResetTokenExpiryMin = 60
	DefaultBcryptCost          = 10
	DefaultSessionName         = "addressbook.sid"
	DefaultSMTPPort            = 587
	DefaultUploadDir           = "public/images"
	DefaultImageBackend        = "disk"
)

type Config struct {
	Env  string
	Port string

	DatabaseURL string

	JWTSecret           string
	TokenExpiryMin      int
	ResetTokenExpiryMin int
	BcryptCost          int
	SessionName         string

	ClientURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	UploadDir    string
	ImageBackend string
	S3Bucket     string
	S3Region     string
	S3Endpoint   string
}

func Load() *Config {
	return &Config{
		Env:                 getEnv("ENV", "development"),
		Port:                getEnv("PORT", DefaultPort),
		DatabaseURL:         mustGetEnv("DATABASE_URL"),
		JWTSecret:           mustGetEnv("JWT_SECRET"),
		TokenExpiryMin:      getEnvAsInt("TOKEN_EXPIRY", DefaultTokenExpiryMin),
		ResetTokenExpiryMin: getEnvAsInt("RESET_TOKEN_EXPIRY", DefaultResetTokenExpiryMin),
		BcryptCost:          getEnvAsInt("BCRYPT_SALT", DefaultBcryptCost),
		SessionName:         getEnv("SESSION_NAME", DefaultSessionName),
		ClientURL:           mustGetEnv("CLIENT_URL"),
		SMTPHost:            mustGetEnv("SMTP_HOST"),
		SMTPPort:            getEnvAsInt("SMTP_PORT", DefaultSMTPPort),
		SMTPUsername:        mustGetEnv("SMTP_USERNAME"),
		SMTPPassword:        mustGetEnv("SMTP_PASSWORD"),
		EmailFrom:           mustGetEnv("EMAIL_FROM"),
		UploadDir:           getEnv("UPLOAD_DIR", DefaultUploadDir),
		ImageBackend:        getEnv("IMAGE_BACKEND", DefaultImageBackend),
		S3Bucket:            getEnv("S3_BUCKET", ""),
		S3Region:            getEnv("S3_REGION", ""),
		S3Endpoint:          getEnv("S3_ENDPOINT", ""),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}

	return val
}
