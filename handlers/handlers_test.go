package handlers

import (
    "context"
    "errors"
    "net/http"

    "github.com/gorilla/mux"

    "github.com/omkardavare/Dist-measurement/config"
    "github.com/omkardavare/Dist-measurement/models"
)

// mockStore implements LocationStore for handler tests. Unset functions
// return empty results.
type mockStore struct {
    listStatesFn    func() ([]models.HierarchyOption, error)
    listDistrictsFn func(stateCode int) ([]models.HierarchyOption, error)
    listTalukasFn   func(stateCode, districtCode int) ([]models.HierarchyOption, error)
    listVillagesFn  func(stateCode, districtCode, talukaCode int) ([]models.HierarchyOption, error)
    resolveFn       func(stateCode, districtCode, talukaCode, villageCode int) (*models.LocationRecord, error)
}

func (m *mockStore) ListStates(ctx context.Context) ([]models.HierarchyOption, error) {
    if m.listStatesFn != nil {
        return m.listStatesFn()
    }
    return nil, nil
}

func (m *mockStore) ListDistricts(ctx context.Context, stateCode int) ([]models.HierarchyOption, error) {
    if m.listDistrictsFn != nil {
        return m.listDistrictsFn(stateCode)
    }
    return nil, nil
}

func (m *mockStore) ListTalukas(ctx context.Context, stateCode, districtCode int) ([]models.HierarchyOption, error) {
    if m.listTalukasFn != nil {
        return m.listTalukasFn(stateCode, districtCode)
    }
    return nil, nil
}

func (m *mockStore) ListVillages(ctx context.Context, stateCode, districtCode, talukaCode int) ([]models.HierarchyOption, error) {
    if m.listVillagesFn != nil {
        return m.listVillagesFn(stateCode, districtCode, talukaCode)
    }
    return nil, nil
}

func (m *mockStore) ResolvePoint(ctx context.Context, stateCode, districtCode, talukaCode, villageCode int) (*models.LocationRecord, error) {
    if m.resolveFn != nil {
        return m.resolveFn(stateCode, districtCode, talukaCode, villageCode)
    }
    return nil, errors.New("resolveFn not set")
}

func newTestHandler(store LocationStore) *Handler {
    return New(store, config.NewHierarchyCache(), nil)
}

// newTestRouter registers the handler under the real route patterns so that
// mux.Vars are populated the same way as in production.
func newTestRouter(h *Handler) http.Handler {
    r := mux.NewRouter()
    r.HandleFunc("/states", h.GetStates).Methods("GET")
    r.HandleFunc("/districts/{state_code}", h.GetDistricts).Methods("GET")
    r.HandleFunc("/talukas/{state_code}/{district_code}", h.GetTalukas).Methods("GET")
    r.HandleFunc("/villages/{state_code}/{district_code}/{taluka_code}", h.GetVillages).Methods("GET")
    r.HandleFunc("/location/{state_code}/{district_code}/{taluka_code}/{village_code}", h.GetLocation).Methods("GET")
    r.HandleFunc("/distance", h.GetDistance).Methods("GET")
    return r
}

func coord(v float64) *float64 {
    return &v
}

func record(lat, lon *float64) *models.LocationRecord {
    return &models.LocationRecord{
        StateName:    "Maharashtra",
        DistrictName: "Pune",
        TalukaName:   "Haveli",
        VillageName:  "Wagholi",
        Latitude:     lat,
        Longitude:    lon,
    }
}
