package common

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
)

// TxRunner abstracts the transaction manager so usecases can be tested
// without a database. Satisfied by db.TransactionManager.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BoolSetting interprets a setting value as a feature flag. The legacy
// values "enabled"/"disabled" are accepted alongside true/false.
func BoolSetting(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "enabled", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// UintListSetting parses a comma-separated ID list ("3,7,12").
func UintListSetting(value string) []uint {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(n))
	}
	return ids
}

// UintSetting parses a single numeric setting; 0 when absent or malformed.
func UintSetting(value string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// LaneStatusMap parses the per-company lane-name to ticket-status mapping
// (a JSON object). Lane names are compared case-insensitively.
func LaneStatusMap(value string) map[string]string {
	out := make(map[string]string)
	if strings.TrimSpace(value) == "" {
		return out
	}

	var raw map[string]string
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return out
	}
	for name, status := range raw {
		out[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(status)
	}
	return out
}
