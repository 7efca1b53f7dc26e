package models

// LocationRecord is one row of the locations table. Latitude and longitude
// are pointers because the source data has villages without surveyed
// coordinates; callers must treat nil as "coordinates unknown".
type LocationRecord struct {
    StateCode    int      `json:"state_code"`
    StateName    string   `json:"state_name"`
    DistrictCode int      `json:"district_code"`
    DistrictName string   `json:"district_name"`
    TalukaCode   int      `json:"taluka_code"`
    TalukaName   string   `json:"taluka_name"`
    VillageCode  int      `json:"village_code"`
    VillageName  string   `json:"village_name"`
    Latitude     *float64 `json:"latitude"`
    Longitude    *float64 `json:"longitude"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (r *LocationRecord) HasCoordinates() bool {
    return r.Latitude != nil && r.Longitude != nil
}

// HierarchyOption is one selectable node at a hierarchy level.
type HierarchyOption struct {
    Code int    `json:"code"`
    Name string `json:"name"`
}

// DistanceResponse is the payload of the distance endpoint. DatabaseDistanceKm
// is null when either endpoint could not be resolved to valid coordinates.
// GoogleMapsDistanceKm is only populated when a Maps API key is configured and
// the distance-matrix call succeeds.
type DistanceResponse struct {
    DatabaseDistanceKm   *float64 `json:"database_distance_km"`
    GoogleMapsDistanceKm *float64 `json:"google_maps_distance_km,omitempty"`
}
