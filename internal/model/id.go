package model

import (
	"strconv"
	"strings"
)

// CanonicalID normalizes a player identifier to its canonical form: a
// trimmed decimal string with any float artifact removed ("1001.0"
// becomes "1001"). Sleeper payloads carry player ids as strings,
// numbers, and occasionally float-keyed indices depending on the
// endpoint; every join boundary in this codebase goes through this
// function so that lookups never miss on representation alone.
// Non-numeric ids (team defenses such as "SF") pass through unchanged.
func CanonicalID(raw string) string {
	id := strings.TrimSpace(raw)
	if !strings.ContainsRune(id, '.') {
		return id
	}
	f, err := strconv.ParseFloat(id, 64)
	if err != nil || f != float64(int64(f)) {
		return id
	}
	return strconv.FormatInt(int64(f), 10)
}
