package trip_models

import (
	"fmt"
	"strings"
)

// ValidatePool checks the trip-pool boundary once so the scheduler can trust
// every POI it sees. Duplicate identities keep their first occurrence and are
// reported in dropped.
func ValidatePool(pois []POI) (pool []POI, dropped []string, err error) {
	seen := make(map[string]struct{}, len(pois))
	pool = make([]POI, 0, len(pois))
	for i, p := range pois {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, nil, fmt.Errorf("poi at index %d has no place id", i)
		}
		if !p.Location.Valid() {
			return nil, nil, fmt.Errorf("poi %q has an invalid location %s", id, p.Location)
		}
		if _, ok := seen[id]; ok {
			dropped = append(dropped, id)
			continue
		}
		seen[id] = struct{}{}
		p.ID = id
		pool = append(pool, p)
	}
	return pool, dropped, nil
}
