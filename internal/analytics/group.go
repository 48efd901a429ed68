package analytics

import "sort"

// Group is the set of rows sharing one key.
type Group[K comparable, T any] struct {
	Key  K
	Rows []T
}

// GroupBy partitions rows by key. Groups appear in the order their key was first seen and
// rows keep their input order inside a group.
func GroupBy[K comparable, T any](rows []T, key func(T) K) []Group[K, T] {
	index := make(map[K]int)
	groups := make([]Group[K, T], 0)
	for _, row := range rows {
		k := key(row)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	return groups
}

// SortGroups orders groups by key using less. Equal keys cannot occur.
func SortGroups[K comparable, T any](groups []Group[K, T], less func(a, b K) bool) {
	sort.Slice(groups, func(i, j int) bool { return less(groups[i].Key, groups[j].Key) })
}

// GroupByString partitions rows by a string key and sorts the groups lexicographically.
func GroupByString[T any](rows []T, key func(T) string) []Group[string, T] {
	groups := GroupBy(rows, key)
	SortGroups(groups, func(a, b string) bool { return a < b })
	return groups
}
