// Package gmaps is a minimal client for the Google Maps distance-matrix API,
// used as an optional road-distance supplement to the geodesic distance.
package gmaps

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "net/url"
    "time"
)

const (
    baseURL        = "https://maps.googleapis.com/maps/api/distancematrix/json"
    requestTimeout = 10 * time.Second
)

type Client struct {
    apiKey     string
    httpClient *http.Client
}

// NewClient returns a distance-matrix client, or nil when no API key is
// configured. Callers treat a nil client as "feature disabled".
func NewClient(apiKey string) *Client {
    if apiKey == "" {
        return nil
    }
    return &Client{
        apiKey: apiKey,
        httpClient: &http.Client{
            Timeout: requestTimeout,
        },
    }
}

type matrixResponse struct {
    Rows []struct {
        Elements []struct {
            Status   string `json:"status"`
            Distance struct {
                Value int `json:"value"` // meters
            } `json:"distance"`
        } `json:"elements"`
    } `json:"rows"`
}

// DistanceKm fetches the road distance in kilometers between two coordinate
// pairs. A single attempt, no retries: callers degrade the field to null on
// any error.
func (c *Client) DistanceKm(ctx context.Context, srcLat, srcLon, destLat, destLon float64) (float64, error) {
    params := url.Values{}
    params.Set("origins", fmt.Sprintf("%f,%f", srcLat, srcLon))
    params.Set("destinations", fmt.Sprintf("%f,%f", destLat, destLon))
    params.Set("key", c.apiKey)

    req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
    if err != nil {
        return 0, err
    }

    resp, err := c.httpClient.Do(req)
    if err != nil {
        return 0, err
    }
    defer resp.Body.Close()

    if resp.StatusCode != http.StatusOK {
        return 0, fmt.Errorf("distance matrix returned status %d", resp.StatusCode)
    }

    var matrix matrixResponse
    if err := json.NewDecoder(resp.Body).Decode(&matrix); err != nil {
        return 0, err
    }

    if len(matrix.Rows) == 0 || len(matrix.Rows[0].Elements) == 0 {
        return 0, errors.New("distance matrix returned no elements")
    }
    elem := matrix.Rows[0].Elements[0]
    if elem.Status != "OK" {
        return 0, fmt.Errorf("distance matrix element status %q", elem.Status)
    }

    return float64(elem.Distance.Value) / 1000.0, nil
}
