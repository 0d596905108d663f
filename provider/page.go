package provider

import "sort"

// Page slices a snapshot of keys for cursor-based pagination in providers
// without a native SCAN. The snapshot is sorted in place so that cursors stay
// meaningful between calls; keys added or removed between pages may be
// skipped or repeated, as with SCAN.
func Page(keys []string, cursor uint64, count int64) ([]string, uint64) {
	if count <= 0 {
		count = 10
	}
	sort.Strings(keys)
	n := uint64(len(keys))
	if cursor >= n {
		return nil, 0
	}
	end := cursor + uint64(count)
	if end >= n {
		return keys[cursor:], 0
	}
	return keys[cursor:end], end
}
