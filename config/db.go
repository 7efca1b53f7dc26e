package config

import (
    "context"
    "database/sql"
    "fmt"
    "log"
    "strings"
    "time"

    _ "github.com/lib/pq"
)

const (
    dbRetryDelay  = 5 * time.Second
    dbPingTimeout = 10 * time.Second
)

// OpenDBWithRetry attempts to open and verify the PostgreSQL connection,
// retrying on failure. Render and Aiven cold-start the database, so the first
// attempts after a deploy routinely fail.
func OpenDBWithRetry(maxRetries int) (*sql.DB, error) {
    var db *sql.DB
    var err error
    for i := 0; i < maxRetries; i++ {
        db, err = OpenDB()
        if err == nil {
            return db, nil
        }
        log.Printf("Failed to connect to PostgreSQL (attempt %d/%d): %v", i+1, maxRetries, err)
        time.Sleep(dbRetryDelay)
    }
    return nil, fmt.Errorf("failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err)
}

// OpenDB opens the PostgreSQL connection pool from DB_* environment
// variables, pings it and verifies the locations table exists. The returned
// handle is owned by the caller; nothing in this package keeps a reference.
func OpenDB() (*sql.DB, error) {
    host := GetEnvWithDefault("DB_HOST", "localhost")
    port := GetEnvWithDefault("DB_PORT", "5432")
    user := GetEnvWithDefault("DB_USER", "postgres")
    password := GetEnvWithDefault("DB_PASSWORD", "")
    dbname := GetEnvWithDefault("DB_NAME", "villagedistance")
    sslmode := GetEnvWithDefault("DB_SSL_MODE", "")

    if sslmode == "" {
        // Aiven rejects plaintext connections.
        if strings.Contains(host, "aivencloud.com") {
            sslmode = "require"
        } else {
            sslmode = "disable"
        }
    }

    log.Printf("Connecting to PostgreSQL at %s:%s/%s (sslmode=%s)", host, port, dbname, sslmode)

    connStr := fmt.Sprintf(
        "host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
        host, port, user, password, dbname, sslmode)

    db, err := sql.Open("postgres", connStr)
    if err != nil {
        return nil, fmt.Errorf("error opening PostgreSQL database: %v", err)
    }

    db.SetMaxOpenConns(25)
    db.SetMaxIdleConns(5)
    db.SetConnMaxLifetime(5 * time.Minute)

    ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
    defer cancel()

    if err = db.PingContext(ctx); err != nil {
        db.Close()
        return nil, fmt.Errorf("error connecting to PostgreSQL database: %v", err)
    }

    var tableExists bool
    err = db.QueryRowContext(ctx, `
        SELECT EXISTS (
            SELECT FROM information_schema.tables
            WHERE table_name = 'locations'
        )`).Scan(&tableExists)
    if err != nil {
        db.Close()
        return nil, fmt.Errorf("error checking locations table: %v", err)
    }
    if !tableExists {
        db.Close()
        return nil, fmt.Errorf("locations table does not exist in the database")
    }

    log.Printf("Successfully connected to PostgreSQL database: %s", dbname)
    return db, nil
}
