package leaderboard

import "strconv"

// Keys returns the reconciliation key of every entry. The key is the
// entry's ID; a repeated ID gets an occurrence suffix so each entry still
// maps to its own row.
func Keys(entries []Entry) []string {
	keys := make([]string, len(entries))
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		n := seen[e.ID]
		seen[e.ID] = n + 1
		if n == 0 {
			keys[i] = e.ID
			continue
		}
		keys[i] = e.ID + "\x00" + strconv.Itoa(n+1)
	}
	return keys
}

// Diff describes how one entry sequence turns into the next.
type Diff struct {
	// Added keys are new in next, in next order.
	Added []string
	// Removed keys were in prev only, in prev order.
	Removed []string
	// Moved keys are in both with a different index, in next order.
	Moved []string
	// Kept keys are in both at the same index, in next order.
	Kept []string
}

// Empty reports whether nothing changed position or membership.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Moved) == 0
}

// Reconcile matches prev and next by key. A reordered sequence yields
// moves, never a removal plus an insertion.
func Reconcile(prev, next []Entry) Diff {
	prevKeys := Keys(prev)
	nextKeys := Keys(next)

	prevIndex := make(map[string]int, len(prevKeys))
	for i, k := range prevKeys {
		prevIndex[k] = i
	}
	nextSet := make(map[string]struct{}, len(nextKeys))

	var d Diff
	for i, k := range nextKeys {
		nextSet[k] = struct{}{}
		j, ok := prevIndex[k]
		switch {
		case !ok:
			d.Added = append(d.Added, k)
		case i != j:
			d.Moved = append(d.Moved, k)
		default:
			d.Kept = append(d.Kept, k)
		}
	}
	for _, k := range prevKeys {
		if _, ok := nextSet[k]; !ok {
			d.Removed = append(d.Removed, k)
		}
	}
	return d
}
