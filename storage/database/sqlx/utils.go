package sqlxrepos

import "github.com/lib/pq"

// pqStringArray adapts an id slice for `!= ALL($n)` / `= ANY($n)` clauses.
func pqStringArray(ids []string) pq.StringArray {
	return pq.StringArray(ids)
}
