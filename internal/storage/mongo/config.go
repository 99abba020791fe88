package mongo

import "time"

// Config holds MongoDB connection settings
type Config struct {
	URI            string
	Database       string
	MinPoolSize    uint64
	MaxPoolSize    uint64
	ConnectTimeout time.Duration
}

// DefaultConfig returns the default MongoDB configuration
func DefaultConfig() Config {
	return Config{
		URI:            "mongodb://localhost:27017",
		Database:       "gamevault",
		MinPoolSize:    2,
		MaxPoolSize:    10,
		ConnectTimeout: 10 * time.Second,
	}
}
