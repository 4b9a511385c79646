package config

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL           string
	MigrationsURL string
}

// GetConnectionString returns the PostgreSQL connection string
func (c *DatabaseConfig) GetConnectionString() string {
	return c.URL
}
