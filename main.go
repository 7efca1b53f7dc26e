package main

import (
    "context"
    "database/sql"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/gorilla/mux"
    "github.com/rs/cors"

    "github.com/omkardavare/Dist-measurement/config"
    "github.com/omkardavare/Dist-measurement/gmaps"
    "github.com/omkardavare/Dist-measurement/handlers"
    "github.com/omkardavare/Dist-measurement/metrics"
    "github.com/omkardavare/Dist-measurement/middleware"
    "github.com/omkardavare/Dist-measurement/store"
)

type HealthResponse struct {
    Status    string `json:"status"`
    DBStatus  string `json:"db_status"`
    DBDetails struct {
        Host     string `json:"host"`
        Port     string `json:"port"`
        Database string `json:"database"`
    } `json:"db_details"`
    Error string `json:"error,omitempty"`
}

func healthCheck(db *sql.DB) http.HandlerFunc {
    return func(w http.ResponseWriter, r *http.Request) {
        response := HealthResponse{
            Status: "ok",
        }

        if err := db.Ping(); err != nil {
            response.Status = "error"
            response.DBStatus = "connection_error"
            response.Error = fmt.Sprintf("Database ping failed: %v", err)
        } else {
            response.DBStatus = "connected"
            response.DBDetails.Host = os.Getenv("DB_HOST")
            response.DBDetails.Port = os.Getenv("DB_PORT")
            response.DBDetails.Database = os.Getenv("DB_NAME")
        }

        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(response)
    }
}

func main() {
    startTime := time.Now()
    log.Printf("Starting server initialization at %s", startTime.Format(time.RFC3339))

    config.LoadEnv()

    port := config.GetEnvWithDefault("PORT", "8080")

    log.Println("Initializing PostgreSQL database...")
    db, err := config.OpenDBWithRetry(5)
    if err != nil {
        log.Fatalf("Failed to initialize PostgreSQL: %v", err)
    }
    log.Println("PostgreSQL database initialized successfully")
    defer db.Close()

    locationStore := store.New(db)
    hierarchyCache := config.NewHierarchyCache()

    gmapsClient := gmaps.NewClient(os.Getenv("GOOGLE_MAPS_API_KEY"))
    if gmapsClient == nil {
        log.Println("GOOGLE_MAPS_API_KEY not set, road distance disabled")
    }

    h := handlers.New(locationStore, hierarchyCache, gmapsClient)

    r := mux.NewRouter()

    corsHandler := cors.New(cors.Options{
        AllowedOrigins: []string{
            "http://localhost:3000",
            "http://localhost:5173",
            "http://localhost:8080",
            "http://127.0.0.1:3000",
            "https://villagedistance.in",
            "https://www.villagedistance.in",
        },
        AllowedMethods: []string{
            "GET", "OPTIONS",
        },
        AllowedHeaders: []string{
            "Accept",
            "Content-Type",
            "Origin",
            "X-Requested-With",
        },
        ExposedHeaders: []string{
            "Content-Length",
            "Content-Type",
        },
        AllowCredentials: false,
        MaxAge:           86400,
    })

    r.Use(corsHandler.Handler)
    r.Use(middleware.RecoveryMiddleware)
    r.Use(middleware.LoggingMiddleware)

    api := r.PathPrefix("/api/v1").Subrouter()
    registerRoutes(api, h)
    log.Println("Routes registered successfully")

    api.HandleFunc("/health/detailed", healthCheck(db)).Methods("GET")
    r.Handle("/metrics", metrics.Handler()).Methods("GET")

    srv := &http.Server{
        Handler:           r,
        Addr:              ":" + port,
        WriteTimeout:      15 * time.Second,
        ReadTimeout:       15 * time.Second,
        IdleTimeout:       60 * time.Second,
        ReadHeaderTimeout: 5 * time.Second,
        MaxHeaderBytes:    1 << 20,
    }

    serverErrors := make(chan error, 1)

    go func() {
        log.Printf("Starting server on port %s...", port)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            serverErrors <- err
        }
    }()

    stop := make(chan os.Signal, 1)
    signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

    select {
    case <-stop:
        log.Println("Shutdown signal received")
    case err := <-serverErrors:
        log.Printf("Server error received: %v", err)
    }

    log.Println("Shutting down server...")
    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    defer cancel()

    if err := srv.Shutdown(ctx); err != nil {
        log.Printf("Error during server shutdown: %v", err)
    } else {
        log.Println("Server shutdown completed successfully")
    }
}

func registerRoutes(api *mux.Router, h *handlers.Handler) {
    // Location hierarchy routes
    api.HandleFunc("/states", h.GetStates).Methods("GET", "OPTIONS")
    api.HandleFunc("/districts/{state_code}", h.GetDistricts).Methods("GET", "OPTIONS")
    api.HandleFunc("/talukas/{state_code}/{district_code}", h.GetTalukas).Methods("GET", "OPTIONS")
    api.HandleFunc("/villages/{state_code}/{district_code}/{taluka_code}", h.GetVillages).Methods("GET", "OPTIONS")
    api.HandleFunc("/location/{state_code}/{district_code}/{taluka_code}/{village_code}", h.GetLocation).Methods("GET", "OPTIONS")

    // Distance route
    api.HandleFunc("/distance", h.GetDistance).Methods("GET", "OPTIONS")

    // Health check
    api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        w.Write([]byte("OK"))
    }).Methods("GET")
}
