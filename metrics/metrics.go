package metrics

import (
    "net/http"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
    RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
        Name: "village_distance_requests_total",
        Help: "Total number of API requests by endpoint",
    }, []string{"endpoint"})

    // DegradedTotal counts distance responses that fell back to a null
    // distance. The reason label keeps "no such village" separate from "the
    // database is down": the API consumer sees the same null either way, but
    // operators must not.
    DegradedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
        Name: "village_distance_degraded_total",
        Help: "Distance responses degraded to null, by reason",
    }, []string{"reason"})

    GmapsRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
        Name: "village_distance_gmaps_requests_total",
        Help: "Total Google Maps distance-matrix requests",
    })

    GmapsFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
        Name: "village_distance_gmaps_fail_total",
        Help: "Total failed Google Maps distance-matrix requests",
    })
)

const (
    ReasonNotFound        = "not_found"
    ReasonNullCoordinates = "null_coordinates"
    ReasonStoreError      = "store_error"
)

func init() {
    prometheus.MustRegister(
        RequestsTotal,
        DegradedTotal,
        GmapsRequestsTotal,
        GmapsFailTotal,
    )
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
    return promhttp.Handler()
}
