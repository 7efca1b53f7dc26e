package handlers

import (
    "encoding/json"
    "errors"
    "log"
    "net/http"

    "github.com/omkardavare/Dist-measurement/metrics"
    "github.com/omkardavare/Dist-measurement/models"
    "github.com/omkardavare/Dist-measurement/store"
    "github.com/omkardavare/Dist-measurement/utils"
)

// GetDistance handles GET /distance?src=...&dest=... where src and dest are
// 9-digit composite location codes.
//
// A malformed code is the caller's fault and gets a 400. Everything after
// that degrades to a null distance instead of an error: the frontend renders
// "distance unavailable" the same way whether the village has no coordinates
// or the database is unreachable. Degradations are logged and counted so the
// two cases stay distinguishable on the operations side.
func (h *Handler) GetDistance(w http.ResponseWriter, r *http.Request) {
    metrics.RequestsTotal.WithLabelValues("distance").Inc()

    srcCode, err := models.ParseLocationCode(r.URL.Query().Get("src"))
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }
    destCode, err := models.ParseLocationCode(r.URL.Query().Get("dest"))
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }

    response := h.computeDistance(r, srcCode, destCode)

    w.Header().Set("Content-Type", "application/json")
    if err := json.NewEncoder(w).Encode(response); err != nil {
        log.Printf("GetDistance: error encoding response: %v", err)
    }
}

// computeDistance resolves both endpoints and fills in the distance fields,
// returning a null DatabaseDistanceKm on any missing data or store failure.
func (h *Handler) computeDistance(r *http.Request, srcCode, destCode models.LocationCode) models.DistanceResponse {
    var response models.DistanceResponse

    src, err := h.store.ResolvePoint(r.Context(),
        srcCode.State, srcCode.District, srcCode.Taluka, srcCode.Village)
    if err != nil {
        return degraded("source", srcCode, err)
    }

    dest, err := h.store.ResolvePoint(r.Context(),
        destCode.State, destCode.District, destCode.Taluka, destCode.Village)
    if err != nil {
        return degraded("destination", destCode, err)
    }

    if !src.HasCoordinates() || !dest.HasCoordinates() {
        log.Printf("GetDistance: null coordinates for %s -> %s",
            src.VillageName, dest.VillageName)
        metrics.DegradedTotal.WithLabelValues(metrics.ReasonNullCoordinates).Inc()
        return response
    }

    distance := utils.CalculateDistance(
        *src.Latitude, *src.Longitude,
        *dest.Latitude, *dest.Longitude,
    )
    response.DatabaseDistanceKm = &distance

    if h.gmapsClient != nil {
        metrics.GmapsRequestsTotal.Inc()
        roadKm, err := h.gmapsClient.DistanceKm(r.Context(),
            *src.Latitude, *src.Longitude,
            *dest.Latitude, *dest.Longitude)
        if err != nil {
            log.Printf("GetDistance: distance matrix call failed: %v", err)
            metrics.GmapsFailTotal.Inc()
        } else {
            response.GoogleMapsDistanceKm = &roadKm
        }
    }

    return response
}

func degraded(which string, code models.LocationCode, err error) models.DistanceResponse {
    if errors.Is(err, store.ErrNotFound) {
        log.Printf("GetDistance: %s location %02d%02d%02d%03d not found",
            which, code.State, code.District, code.Taluka, code.Village)
        metrics.DegradedTotal.WithLabelValues(metrics.ReasonNotFound).Inc()
    } else {
        log.Printf("GetDistance: error resolving %s location: %v", which, err)
        metrics.DegradedTotal.WithLabelValues(metrics.ReasonStoreError).Inc()
    }
    return models.DistanceResponse{}
}
