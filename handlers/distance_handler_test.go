package handlers

import (
    "encoding/json"
    "errors"
    "math"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/omkardavare/Dist-measurement/models"
    "github.com/omkardavare/Dist-measurement/store"
)

func getDistance(t *testing.T, router http.Handler, url string) (*httptest.ResponseRecorder, models.DistanceResponse) {
    t.Helper()

    req := httptest.NewRequest("GET", url, nil)
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)

    var resp models.DistanceResponse
    if w.Code == http.StatusOK {
        if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
            t.Fatalf("decode response: %v", err)
        }
    }
    return w, resp
}

func TestGetDistance(t *testing.T) {
    // Mumbai for the source, Delhi for the destination.
    mock := &mockStore{
        resolveFn: func(s, d, tk, v int) (*models.LocationRecord, error) {
            if v == 100 {
                return record(coord(19.0760), coord(72.8777)), nil
            }
            return record(coord(28.7041), coord(77.1025)), nil
        },
    }
    router := newTestRouter(newTestHandler(mock))

    w, resp := getDistance(t, router, "/distance?src=272104100&dest=070101200")
    if w.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
    }
    if resp.DatabaseDistanceKm == nil {
        t.Fatal("database_distance_km is null, want a value")
    }
    if math.Abs(*resp.DatabaseDistanceKm-1153) > 15 {
        t.Errorf("database_distance_km = %f, want ~1153", *resp.DatabaseDistanceKm)
    }
    if resp.GoogleMapsDistanceKm != nil {
        t.Errorf("google_maps_distance_km = %v, want absent without an API key", *resp.GoogleMapsDistanceKm)
    }
}

func TestGetDistance_SameVillage(t *testing.T) {
    mock := &mockStore{
        resolveFn: func(s, d, tk, v int) (*models.LocationRecord, error) {
            return record(coord(18.5204), coord(73.8567)), nil
        },
    }
    router := newTestRouter(newTestHandler(mock))

    w, resp := getDistance(t, router, "/distance?src=272104100&dest=272104100")
    if w.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200", w.Code)
    }
    if resp.DatabaseDistanceKm == nil {
        t.Fatal("database_distance_km is null, want 0")
    }
    if *resp.DatabaseDistanceKm > 1e-9 {
        t.Errorf("database_distance_km = %g, want 0", *resp.DatabaseDistanceKm)
    }
}

func TestGetDistance_SourceNotFound(t *testing.T) {
    mock := &mockStore{
        resolveFn: func(s, d, tk, v int) (*models.LocationRecord, error) {
            return nil, store.ErrNotFound
        },
    }
    router := newTestRouter(newTestHandler(mock))

    w, resp := getDistance(t, router, "/distance?src=272104100&dest=070101200")
    if w.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200 (missing data is not an error)", w.Code)
    }
    if resp.DatabaseDistanceKm != nil {
        t.Errorf("database_distance_km = %v, want null", *resp.DatabaseDistanceKm)
    }
}

func TestGetDistance_NullCoordinates(t *testing.T) {
    mock := &mockStore{
        resolveFn: func(s, d, tk, v int) (*models.LocationRecord, error) {
            if v == 100 {
                return record(coord(19.0760), coord(72.8777)), nil
            }
            // Destination row exists but was never surveyed.
            return record(nil, nil), nil
        },
    }
    router := newTestRouter(newTestHandler(mock))

    w, resp := getDistance(t, router, "/distance?src=272104100&dest=070101200")
    if w.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200", w.Code)
    }
    if resp.DatabaseDistanceKm != nil {
        t.Errorf("database_distance_km = %v, want null", *resp.DatabaseDistanceKm)
    }
}

func TestGetDistance_PartialCoordinates(t *testing.T) {
    mock := &mockStore{
        resolveFn: func(s, d, tk, v int) (*models.LocationRecord, error) {
            return record(coord(19.0760), nil), nil
        },
    }
    router := newTestRouter(newTestHandler(mock))

    w, resp := getDistance(t, router, "/distance?src=272104100&dest=070101200")
    if w.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200", w.Code)
    }
    if resp.DatabaseDistanceKm != nil {
        t.Errorf("database_distance_km = %v, want null for half-surveyed row", *resp.DatabaseDistanceKm)
    }
}

func TestGetDistance_StoreErrorDegrades(t *testing.T) {
    mock := &mockStore{
        resolveFn: func(s, d, tk, v int) (*models.LocationRecord, error) {
            return nil, errors.New("connection refused")
        },
    }
    router := newTestRouter(newTestHandler(mock))

    w, resp := getDistance(t, router, "/distance?src=272104100&dest=070101200")
    if w.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200 (store failure degrades to null)", w.Code)
    }
    if resp.DatabaseDistanceKm != nil {
        t.Errorf("database_distance_km = %v, want null", *resp.DatabaseDistanceKm)
    }
}

func TestGetDistance_MalformedCodes(t *testing.T) {
    router := newTestRouter(newTestHandler(&mockStore{}))

    urls := []string{
        "/distance?src=01020&dest=070101200",   // src too short
        "/distance?src=272104100&dest=01a2031", // dest junk
        "/distance?dest=070101200",             // src missing
        "/distance?src=272104100",              // dest missing
    }
    for _, url := range urls {
        w, _ := getDistance(t, router, url)
        if w.Code != http.StatusBadRequest {
            t.Errorf("%s: status = %d, want 400", url, w.Code)
        }
    }
}
