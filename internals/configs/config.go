package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// =======================
// ENV LOADER
// =======================

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system ENV")
	}
	if GetEnv("DB_HOST") == "" {
		log.Println("DB_HOST is not set")
	}
	if GetEnv("MAIL_SERVER", "smtp.gmail.com") == "" {
		log.Println("MAIL_SERVER is not set")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(GetEnv(key)); err == nil {
		return v
	}
	return defaultValue
}

func GetEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(GetEnv(key)); err == nil {
		return v
	}
	return defaultValue
}

// =======================
// APP SETTINGS
// =======================

// BaseURL is used to build absolute share links.
func BaseURL() string {
	return GetEnv("APP_BASE_URL", "http://localhost:3000")
}

// MaxUploadBytes limits the upload body size (default 16MB, same as the
// classic Flask MAX_CONTENT_LENGTH everyone copies).
func MaxUploadBytes() int {
	return GetEnvInt("MAX_UPLOAD_BYTES", 16*1024*1024)
}

// =======================
// MAIL SETTINGS
// =======================

func MailServer() string        { return GetEnv("MAIL_SERVER", "smtp.gmail.com") }
func MailPort() int             { return GetEnvInt("MAIL_PORT", 587) }
func MailUseTLS() bool          { return GetEnvBool("MAIL_USE_TLS", true) }
func MailDefaultSender() string { return GetEnv("MAIL_DEFAULT_SENDER", "noreply@studentresults.com") }

// MailOwnerEmail, when set, receives a BCC copy of every result email.
func MailOwnerEmail() string { return GetEnv("MAIL_OWNER_EMAIL") }

// =======================
// GORM LOGGER CUSTOM
// =======================

type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
