package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP              string // Host IP for the server
	Port                int    // Port the HTTP server listens on
	GinMode             string // Mode for the Gin framework (e.g., release, debug, test)
	MazeRows            int    // Default number of maze rows
	MazeCols            int    // Default number of maze columns
	MazeMaxDimension    int    // Largest rows or columns a client may request
	DBHost              string // Hostname or IP address for the database, empty disables persistence
	DBPort              int    // Port number for the database
	DBUser              string // Username for the database
	DBPassword          string // Password for the database
	DBName              string // Name of the database
	RedisAddr           string // Address of the Redis server holding leaderboards
	RedisPassword       string // Password for Redis
	RedisDB             int    // Redis logical database
	JWTSecret           string // Secret key for JWT signing
	JWTIssuer           string // Issuer claim for JWTs
	RunTicketTTLSeconds int    // Lifetime of a run ticket
	LeaderboardSize     int    // Entries kept per leaderboard
}

// PersistenceEnabled reports whether player accounts, runs and leaderboards are configured.
func (c Config) PersistenceEnabled() bool {
	return c.DBHost != ""
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	cfg, err := load(os.LookupEnv)
	if err != nil {
		log.Fatalf("[APP] [FATAL] %v", err)
	}
	return cfg
}

type lookupFunc func(string) (string, bool)

// load reads the configuration through lookup.
func load(lookup lookupFunc) (Config, error) {
	e := &envReader{lookup: lookup}

	cfg := Config{
		HostIP:              e.getString("HOST_IP", ""),
		Port:                e.getInt("PORT", 1337),
		GinMode:             e.getString("GIN_MODE", "release"),
		MazeRows:            e.getInt("MAZE_ROWS", 15),
		MazeCols:            e.getInt("MAZE_COLS", 25),
		MazeMaxDimension:    e.getInt("MAZE_MAX_DIMENSION", 100),
		DBHost:              e.getString("DB_HOST", ""),
		DBPort:              e.getInt("DB_PORT", 27017),
		DBUser:              e.getString("DB_USER", ""),
		DBPassword:          e.getString("DB_PASS", ""),
		DBName:              e.getString("DB_NAME", "maze"),
		RedisAddr:           e.getString("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       e.getString("REDIS_PASSWORD", ""),
		RedisDB:             e.getInt("REDIS_DB", 0),
		JWTSecret:           e.getString("JWT_SECRET", ""),
		JWTIssuer:           e.getString("JWT_ISSUER", "maze-collapse"),
		RunTicketTTLSeconds: e.getInt("RUN_TICKET_TTL_SECONDS", 3600),
		LeaderboardSize:     e.getInt("LEADERBOARD_SIZE", 100),
	}
	if e.err != nil {
		return Config{}, e.err
	}

	if cfg.PersistenceEnabled() && cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("environment variable JWT_SECRET is required when DB_HOST is set")
	}
	if cfg.MazeRows < 1 || cfg.MazeCols < 1 || cfg.MazeMaxDimension < max(cfg.MazeRows, cfg.MazeCols) {
		return Config{}, fmt.Errorf("maze dimensions %dx%d do not fit MAZE_MAX_DIMENSION=%d", cfg.MazeRows, cfg.MazeCols, cfg.MazeMaxDimension)
	}

	return cfg, nil
}

// envReader keeps the first parse error so every key can be read in one pass.
type envReader struct {
	lookup lookupFunc
	err    error
}

// string retrieves the value of an environment variable or returns a default value if not set.
func (e *envReader) getString(key, defaultValue string) string {
	if value, exists := e.lookup(key); exists {
		return value
	}
	return defaultValue
}

// int retrieves the value of an environment variable as an integer or returns a default value if not set.
func (e *envReader) getInt(key string, defaultValue int) int {
	valueStr, exists := e.lookup(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value
}
