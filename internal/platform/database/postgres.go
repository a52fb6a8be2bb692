package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

const (
	connectAttempts = 10
	connectBackoff  = 2 * time.Second
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func (c Config) dsn() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

// NewPostgresDB opens the database and waits for it to accept connections,
// retrying with a fixed backoff so the service can start before the database
// container is ready.
func NewPostgresDB(cfg Config) (*sql.DB, error) {
	var lastErr error

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		log.Printf("Connecting to database (attempt %d/%d)...", attempt, connectAttempts)

		db, err := sql.Open("postgres", cfg.dsn())
		if err == nil {
			if err = db.Ping(); err == nil {
				log.Println("Database connection established.")
				return db, nil
			}
			db.Close()
		}

		lastErr = err
		log.Printf("Database not ready: %v. Retrying in %s...", err, connectBackoff)
		time.Sleep(connectBackoff)
	}

	return nil, fmt.Errorf("database connection failed after %d attempts: %w", connectAttempts, lastErr)
}
