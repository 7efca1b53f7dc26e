package config

import (
    "log"
    "os"
    "strconv"

    "github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file when one is present.
// Missing files are not an error: deployed environments inject configuration
// directly and only local development uses .env.
func LoadEnv() {
    paths := []string{".env", "../.env"}
    if p := os.Getenv("VILLAGE_ENV"); p != "" {
        paths = append([]string{p}, paths...)
    }

    for _, path := range paths {
        if _, err := os.Stat(path); err != nil {
            continue
        }
        if err := godotenv.Load(path); err != nil {
            log.Printf("Warning: error loading %s: %v", path, err)
            continue
        }
        log.Printf("Loaded environment variables from %s", path)
        return
    }
}

func GetEnvWithDefault(key, defaultValue string) string {
    if value := os.Getenv(key); value != "" {
        return value
    }
    return defaultValue
}

func GetEnvAsInt(key string, defaultValue int) int {
    if value := os.Getenv(key); value != "" {
        if intValue, err := strconv.Atoi(value); err == nil {
            return intValue
        }
    }
    return defaultValue
}

func GetEnvAsBool(key string, defaultValue bool) bool {
    if value := os.Getenv(key); value != "" {
        if boolValue, err := strconv.ParseBool(value); err == nil {
            return boolValue
        }
    }
    return defaultValue
}
