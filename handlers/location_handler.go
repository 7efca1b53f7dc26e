package handlers

import (
    "context"
    "encoding/json"
    "errors"
    "log"
    "net/http"
    "strconv"

    "github.com/gorilla/mux"
    "github.com/patrickmn/go-cache"

    "github.com/omkardavare/Dist-measurement/config"
    "github.com/omkardavare/Dist-measurement/gmaps"
    "github.com/omkardavare/Dist-measurement/metrics"
    "github.com/omkardavare/Dist-measurement/models"
    "github.com/omkardavare/Dist-measurement/store"
)

// LocationStore is the hierarchy lookup capability the handlers need. The
// production implementation is store.Store; tests substitute a mock.
type LocationStore interface {
    ListStates(ctx context.Context) ([]models.HierarchyOption, error)
    ListDistricts(ctx context.Context, stateCode int) ([]models.HierarchyOption, error)
    ListTalukas(ctx context.Context, stateCode, districtCode int) ([]models.HierarchyOption, error)
    ListVillages(ctx context.Context, stateCode, districtCode, talukaCode int) ([]models.HierarchyOption, error)
    ResolvePoint(ctx context.Context, stateCode, districtCode, talukaCode, villageCode int) (*models.LocationRecord, error)
}

// Handler serves the location hierarchy and distance endpoints. All
// dependencies are injected at construction; there is no package-level state.
type Handler struct {
    store          LocationStore
    hierarchyCache *cache.Cache
    gmapsClient    *gmaps.Client
}

// New builds a Handler. gmapsClient may be nil, which disables the Google
// Maps road-distance field.
func New(locationStore LocationStore, hierarchyCache *cache.Cache, gmapsClient *gmaps.Client) *Handler {
    return &Handler{
        store:          locationStore,
        hierarchyCache: hierarchyCache,
        gmapsClient:    gmapsClient,
    }
}

// pathCode extracts one numeric code from the route variables.
func pathCode(r *http.Request, name string) (int, error) {
    raw := mux.Vars(r)[name]
    code, err := strconv.Atoi(raw)
    if err != nil || code < 0 {
        return 0, errors.New("invalid " + name)
    }
    return code, nil
}

func writeOptions(w http.ResponseWriter, options []models.HierarchyOption) {
    // Hierarchy data changes only with census revisions; let clients cache.
    w.Header().Set("Cache-Control", "public, max-age=3600")
    w.Header().Set("Content-Type", "application/json")
    if err := json.NewEncoder(w).Encode(options); err != nil {
        log.Printf("Error encoding response: %v", err)
    }
}

// GetStates handles GET /states.
func (h *Handler) GetStates(w http.ResponseWriter, r *http.Request) {
    metrics.RequestsTotal.WithLabelValues("states").Inc()

    cacheKey := config.GetCacheKey("states")
    if cached, found := h.hierarchyCache.Get(cacheKey); found {
        writeOptions(w, cached.([]models.HierarchyOption))
        return
    }

    options, err := h.store.ListStates(r.Context())
    if err != nil {
        log.Printf("GetStates: error querying states: %v", err)
        http.Error(w, "Error fetching states", http.StatusInternalServerError)
        return
    }

    h.hierarchyCache.Set(cacheKey, options, cache.DefaultExpiration)
    writeOptions(w, options)
}

// GetDistricts handles GET /districts/{state_code}.
func (h *Handler) GetDistricts(w http.ResponseWriter, r *http.Request) {
    metrics.RequestsTotal.WithLabelValues("districts").Inc()

    stateCode, err := pathCode(r, "state_code")
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }

    cacheKey := config.GetCacheKey("districts", stateCode)
    if cached, found := h.hierarchyCache.Get(cacheKey); found {
        writeOptions(w, cached.([]models.HierarchyOption))
        return
    }

    options, err := h.store.ListDistricts(r.Context(), stateCode)
    if err != nil {
        log.Printf("GetDistricts: error querying districts for state %d: %v", stateCode, err)
        http.Error(w, "Error fetching districts", http.StatusInternalServerError)
        return
    }

    h.hierarchyCache.Set(cacheKey, options, cache.DefaultExpiration)
    writeOptions(w, options)
}

// GetTalukas handles GET /talukas/{state_code}/{district_code}.
func (h *Handler) GetTalukas(w http.ResponseWriter, r *http.Request) {
    metrics.RequestsTotal.WithLabelValues("talukas").Inc()

    stateCode, err := pathCode(r, "state_code")
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }
    districtCode, err := pathCode(r, "district_code")
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }

    cacheKey := config.GetCacheKey("talukas", stateCode, districtCode)
    if cached, found := h.hierarchyCache.Get(cacheKey); found {
        writeOptions(w, cached.([]models.HierarchyOption))
        return
    }

    options, err := h.store.ListTalukas(r.Context(), stateCode, districtCode)
    if err != nil {
        log.Printf("GetTalukas: error querying talukas for state %d district %d: %v",
            stateCode, districtCode, err)
        http.Error(w, "Error fetching talukas", http.StatusInternalServerError)
        return
    }

    h.hierarchyCache.Set(cacheKey, options, cache.DefaultExpiration)
    writeOptions(w, options)
}

// GetVillages handles GET /villages/{state_code}/{district_code}/{taluka_code}.
func (h *Handler) GetVillages(w http.ResponseWriter, r *http.Request) {
    metrics.RequestsTotal.WithLabelValues("villages").Inc()

    stateCode, err := pathCode(r, "state_code")
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }
    districtCode, err := pathCode(r, "district_code")
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }
    talukaCode, err := pathCode(r, "taluka_code")
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }

    cacheKey := config.GetCacheKey("villages", stateCode, districtCode, talukaCode)
    if cached, found := h.hierarchyCache.Get(cacheKey); found {
        writeOptions(w, cached.([]models.HierarchyOption))
        return
    }

    options, err := h.store.ListVillages(r.Context(), stateCode, districtCode, talukaCode)
    if err != nil {
        log.Printf("GetVillages: error querying villages for state %d district %d taluka %d: %v",
            stateCode, districtCode, talukaCode, err)
        http.Error(w, "Error fetching villages", http.StatusInternalServerError)
        return
    }

    h.hierarchyCache.Set(cacheKey, options, cache.DefaultExpiration)
    writeOptions(w, options)
}

// GetLocation handles
// GET /location/{state_code}/{district_code}/{taluka_code}/{village_code},
// returning the full record for a fully specified code.
func (h *Handler) GetLocation(w http.ResponseWriter, r *http.Request) {
    metrics.RequestsTotal.WithLabelValues("location").Inc()

    stateCode, err := pathCode(r, "state_code")
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }
    districtCode, err := pathCode(r, "district_code")
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }
    talukaCode, err := pathCode(r, "taluka_code")
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }
    villageCode, err := pathCode(r, "village_code")
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }

    record, err := h.store.ResolvePoint(r.Context(), stateCode, districtCode, talukaCode, villageCode)
    if errors.Is(err, store.ErrNotFound) {
        http.Error(w, "Location not found", http.StatusNotFound)
        return
    }
    if err != nil {
        log.Printf("GetLocation: error resolving %02d%02d%02d%03d: %v",
            stateCode, districtCode, talukaCode, villageCode, err)
        http.Error(w, "Error fetching location", http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    if err := json.NewEncoder(w).Encode(record); err != nil {
        log.Printf("GetLocation: error encoding response: %v", err)
    }
}
