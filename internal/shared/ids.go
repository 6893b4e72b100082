package shared

import (
	"os"
	"strconv"
	"strings"
)

// Seed catalog for the ingestor. INGEST_PROPERTY_IDS (comma-separated)
// overrides the built-in batch.
var PropertyIDs = []int64{
	1001243, 1001265, 1001307,
	1002011, 1002089, 1002140,
	1003502, 1003519, 1003577,
	1004021, 1004066,
}

func LoadPropertyIDs() []int64 {
	raw := os.Getenv("INGEST_PROPERTY_IDS")
	if raw == "" {
		return PropertyIDs
	}
	var out []int64
	for _, part := range strings.Split(raw, ",") {
		if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil && id > 0 {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return PropertyIDs
	}
	return out
}
