package config

import (
	"os"
	"strconv"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	RedisAddress  string
	RedisPassword string

	HTTPPort string

	OperatorWorkers int
	ReportWorkers   int
	ReportQueueSize int
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		RedisAddress:     "localhost:6379",
		RedisPassword:    "",
		HTTPPort:         "9446",
		OperatorWorkers:  2,
		ReportWorkers:    4,
		ReportQueueSize:  256,
	}

	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")
	envRedisAddress := os.Getenv("REDIS_ADDRESS")
	envRedisPassword := os.Getenv("REDIS_PASSWORD")
	envHTTPPort := os.Getenv("HTTP_PORT")
	envOperatorWorkers := os.Getenv("OPERATOR_WORKERS")
	envReportWorkers := os.Getenv("REPORT_WORKERS")
	envReportQueueSize := os.Getenv("REPORT_QUEUE_SIZE")

	if len(envPostgresAddress) != 0 {
		env.PostgresAddress = envPostgresAddress
	}

	if len(envPostgresPort) != 0 {
		env.PostgresPort = envPostgresPort
	}

	if len(envPostgresDB) != 0 {
		env.PostgresDB = envPostgresDB
	}

	if len(envPostgresUsername) != 0 {
		env.PostgresUsername = envPostgresUsername
	}

	if len(envPostgresPassword) != 0 {
		env.PostgresPassword = envPostgresPassword
	}

	if len(envRedisAddress) != 0 {
		env.RedisAddress = envRedisAddress
	}

	if len(envRedisPassword) != 0 {
		env.RedisPassword = envRedisPassword
	}

	if len(envHTTPPort) != 0 {
		env.HTTPPort = envHTTPPort
	}

	if len(envOperatorWorkers) != 0 {
		workers, err := strconv.Atoi(envOperatorWorkers)
		if err != nil {
			return nil, err
		}
		env.OperatorWorkers = workers
	}

	if len(envReportWorkers) != 0 {
		workers, err := strconv.Atoi(envReportWorkers)
		if err != nil {
			return nil, err
		}
		env.ReportWorkers = workers
	}

	if len(envReportQueueSize) != 0 {
		size, err := strconv.Atoi(envReportQueueSize)
		if err != nil {
			return nil, err
		}
		env.ReportQueueSize = size
	}

	return &env, nil
}

// PostgresURL builds the connection string shared by the server and the
// migration runner.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
