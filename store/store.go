package store

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "sort"
    "time"

    "github.com/omkardavare/Dist-measurement/models"
)

// ErrNotFound is returned when a fully specified location code has no
// matching row.
var ErrNotFound = errors.New("location not found")

const queryTimeout = 10 * time.Second

// Store provides hierarchy lookups over the locations table. It holds the
// connection pool it is constructed with and keeps no other state; every call
// re-queries with the full ancestor filter chain.
type Store struct {
    db *sql.DB
}

func New(db *sql.DB) *Store {
    return &Store{db: db}
}

// optionRow is one scanned (code, name) pair before cleanup. Both fields are
// nullable in the source data.
type optionRow struct {
    Code sql.NullInt64
    Name sql.NullString
}

// dedupeAndSortOptions drops rows with a missing code or name, keeps the
// first name seen for each code, and returns the options in ascending code
// order regardless of row order from the database.
func dedupeAndSortOptions(rows []optionRow) []models.HierarchyOption {
    seen := make(map[int]string)
    for _, r := range rows {
        if !r.Code.Valid || !r.Name.Valid || r.Name.String == "" {
            continue
        }
        code := int(r.Code.Int64)
        if _, ok := seen[code]; !ok {
            seen[code] = r.Name.String
        }
    }

    codes := make([]int, 0, len(seen))
    for code := range seen {
        codes = append(codes, code)
    }
    sort.Ints(codes)

    options := make([]models.HierarchyOption, 0, len(codes))
    for _, code := range codes {
        options = append(options, models.HierarchyOption{Code: code, Name: seen[code]})
    }
    return options
}

// sortVillageOptions drops rows with a missing code or name and sorts by
// code. Villages are leaf rows, one per code under a taluka, so unlike the
// upper levels no dedupe pass is needed.
func sortVillageOptions(rows []optionRow) []models.HierarchyOption {
    options := make([]models.HierarchyOption, 0, len(rows))
    for _, r := range rows {
        if !r.Code.Valid || !r.Name.Valid || r.Name.String == "" {
            continue
        }
        options = append(options, models.HierarchyOption{
            Code: int(r.Code.Int64),
            Name: r.Name.String,
        })
    }
    sort.Slice(options, func(i, j int) bool {
        return options[i].Code < options[j].Code
    })
    return options
}

func (s *Store) queryOptions(ctx context.Context, query string, args ...interface{}) ([]optionRow, error) {
    ctx, cancel := context.WithTimeout(ctx, queryTimeout)
    defer cancel()

    rows, err := s.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, fmt.Errorf("query error: %v", err)
    }
    defer rows.Close()

    var result []optionRow
    for rows.Next() {
        var r optionRow
        if err := rows.Scan(&r.Code, &r.Name); err != nil {
            return nil, fmt.Errorf("scan error: %v", err)
        }
        result = append(result, r)
    }
    if err := rows.Err(); err != nil {
        return nil, fmt.Errorf("rows error: %v", err)
    }
    return result, nil
}

// ListStates returns all states, deduplicated by code, ascending by code.
func (s *Store) ListStates(ctx context.Context) ([]models.HierarchyOption, error) {
    rows, err := s.queryOptions(ctx, `
        SELECT state_code, state_name
        FROM locations`)
    if err != nil {
        return nil, err
    }
    return dedupeAndSortOptions(rows), nil
}

// ListDistricts returns the districts of one state.
func (s *Store) ListDistricts(ctx context.Context, stateCode int) ([]models.HierarchyOption, error) {
    rows, err := s.queryOptions(ctx, `
        SELECT district_code, district_name
        FROM locations
        WHERE state_code = $1`, stateCode)
    if err != nil {
        return nil, err
    }
    return dedupeAndSortOptions(rows), nil
}

// ListTalukas returns the talukas of one district. The state filter is kept
// in the query because district codes repeat across states.
func (s *Store) ListTalukas(ctx context.Context, stateCode, districtCode int) ([]models.HierarchyOption, error) {
    rows, err := s.queryOptions(ctx, `
        SELECT taluka_code, taluka_name
        FROM locations
        WHERE state_code = $1
        AND district_code = $2`, stateCode, districtCode)
    if err != nil {
        return nil, err
    }
    return dedupeAndSortOptions(rows), nil
}

// ListVillages returns the villages of one taluka, sorted by code.
func (s *Store) ListVillages(ctx context.Context, stateCode, districtCode, talukaCode int) ([]models.HierarchyOption, error) {
    rows, err := s.queryOptions(ctx, `
        SELECT village_code, village_name
        FROM locations
        WHERE state_code = $1
        AND district_code = $2
        AND taluka_code = $3`, stateCode, districtCode, talukaCode)
    if err != nil {
        return nil, err
    }
    return sortVillageOptions(rows), nil
}

// ResolvePoint returns the single location row matching all four codes, or
// ErrNotFound when no row matches.
func (s *Store) ResolvePoint(ctx context.Context, stateCode, districtCode, talukaCode, villageCode int) (*models.LocationRecord, error) {
    ctx, cancel := context.WithTimeout(ctx, queryTimeout)
    defer cancel()

    record := models.LocationRecord{
        StateCode:    stateCode,
        DistrictCode: districtCode,
        TalukaCode:   talukaCode,
        VillageCode:  villageCode,
    }

    var lat, lon sql.NullFloat64
    err := s.db.QueryRowContext(ctx, `
        SELECT
            COALESCE(state_name, ''),
            COALESCE(district_name, ''),
            COALESCE(taluka_name, ''),
            COALESCE(village_name, ''),
            latitude,
            longitude
        FROM locations
        WHERE state_code = $1
        AND district_code = $2
        AND taluka_code = $3
        AND village_code = $4
        LIMIT 1`,
        stateCode, districtCode, talukaCode, villageCode).Scan(
        &record.StateName,
        &record.DistrictName,
        &record.TalukaName,
        &record.VillageName,
        &lat,
        &lon,
    )
    if err == sql.ErrNoRows {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, fmt.Errorf("database query error: %v", err)
    }

    if lat.Valid {
        record.Latitude = &lat.Float64
    }
    if lon.Valid {
        record.Longitude = &lon.Float64
    }
    return &record, nil
}
