package models

import (
    "fmt"
    "strconv"
)

// Composite location codes are fixed width: state(2) district(2) taluka(2)
// village(3), nine digits total. Leading zeros matter in the string form only;
// each segment is handled as a plain integer once parsed.
const (
    codeLength  = 9
    stateEnd    = 2
    districtEnd = 4
    talukaEnd   = 6
)

// LocationCode is a parsed composite location code.
type LocationCode struct {
    State    int
    District int
    Taluka   int
    Village  int
}

// MalformedCodeError describes a composite code that failed structural
// validation. It maps to a client error, never to a null distance.
type MalformedCodeError struct {
    Code   string
    Reason string
}

func (e *MalformedCodeError) Error() string {
    return fmt.Sprintf("malformed location code %q: %s", e.Code, e.Reason)
}

// ParseLocationCode splits a 9-digit composite code into its four hierarchy
// segments. The legacy frontend sent these unchecked; length and digit
// validation happens here so a short or junk code cannot slice out of range
// or mis-parse into a wrong village.
func ParseLocationCode(code string) (LocationCode, error) {
    if len(code) != codeLength {
        return LocationCode{}, &MalformedCodeError{
            Code:   code,
            Reason: fmt.Sprintf("expected %d characters, got %d", codeLength, len(code)),
        }
    }
    for _, c := range code {
        if c < '0' || c > '9' {
            return LocationCode{}, &MalformedCodeError{
                Code:   code,
                Reason: "code must be numeric",
            }
        }
    }

    state, _ := strconv.Atoi(code[:stateEnd])
    district, _ := strconv.Atoi(code[stateEnd:districtEnd])
    taluka, _ := strconv.Atoi(code[districtEnd:talukaEnd])
    village, _ := strconv.Atoi(code[talukaEnd:])

    return LocationCode{
        State:    state,
        District: district,
        Taluka:   taluka,
        Village:  village,
    }, nil
}
