package config

import (
	"bookingapi/booking/model"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DYNAMODB_DRIVER = "dynamodb"
	SQL_DRIVER      = "sql"
	MEMORY_DRIVER   = "memory"
)

const (
	defaultRegion        = "eu-west-3"
	defaultMaxAttempts   = 3
	defaultStorageDriver = DYNAMODB_DRIVER
	defaultDatabaseURL   = "file:bookings.db"
	defaultListenAddr    = ":3000"
)

// Config is built once at process start and passed by value.
type Config struct {
	TableName      string
	Region         string
	DynamoEndpoint string
	MaxAttempts    int

	StorageDriver string
	DatabaseURL   string
	ListenAddr    string

	FunctionPrefix string
	LogDir         string

	Rules *model.RoomTable
}

func Load() (Config, error) {
	cfg := Config{
		TableName:      os.Getenv("TABLE_NAME"),
		Region:         getEnvOrDefault("AWS_REGION", defaultRegion),
		DynamoEndpoint: os.Getenv("DDB_URL"),
		MaxAttempts:    defaultMaxAttempts,
		StorageDriver:  getEnvOrDefault("STORAGE_DRIVER", defaultStorageDriver),
		DatabaseURL:    getEnvOrDefault("DATABASE_URL", defaultDatabaseURL),
		ListenAddr:     getEnvOrDefault("LISTEN_ADDR", defaultListenAddr),
		FunctionPrefix: os.Getenv("FUNCTION_PREFIX"),
		LogDir:         os.Getenv("LOG_DIR"),
		Rules:          model.NewDefaultRoomTable(),
	}

	if raw := os.Getenv("DDB_MAX_ATTEMPTS"); raw != "" {
		maxAttempts, err := strconv.Atoi(raw)
		if err != nil || maxAttempts < 0 {
			return Config{}, fmt.Errorf("DDB_MAX_ATTEMPTS must be a non-negative integer, got '%v'", raw)
		}
		cfg.MaxAttempts = maxAttempts
	}

	if !slices.Contains([]string{DYNAMODB_DRIVER, SQL_DRIVER, MEMORY_DRIVER}, cfg.StorageDriver) {
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER '%v'", cfg.StorageDriver)
	}

	return cfg, nil
}

// LoadWithDotEnv reads the given .env files (".env" when none is given) into the
// environment before loading. Missing files are ignored.
func LoadWithDotEnv(filenames ...string) (Config, error) {
	err := godotenv.Load(filenames...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("could not read env file: %w", err)
	}
	return Load()
}

func (c Config) RequireTableName() error {
	if c.TableName == "" {
		return errors.New("TABLE_NAME is empty")
	}
	return nil
}

// FunctionName is the deployed name of the Lambda handling the given operation.
func (c Config) FunctionName(operation string) string {
	return c.FunctionPrefix + operation
}

func getEnvOrDefault(key string, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}
