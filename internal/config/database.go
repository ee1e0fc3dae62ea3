// internal/config/database.go
package config

import (
	"fmt"
	"time"
)

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC application_name=resona-api",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

func (l *LedgerConfig) RequestTimeout() time.Duration {
	return time.Duration(l.Timeout) * time.Second
}

func (l *LedgerConfig) CacheDuration() time.Duration {
	return time.Duration(l.CacheTTL) * time.Second
}
