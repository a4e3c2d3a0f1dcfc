package conf

// MergeDefaults merges maps into a single DefaultConfig, prefixing
// every key with ns.
func MergeDefaults[M ~map[string]V, V any](ns string, maps ...M) DefaultConfig {
	fullCap := 0
	for _, m := range maps {
		fullCap += len(m)
	}

	merged := make(DefaultConfig, fullCap)
	for _, m := range maps {
		for key, val := range m {
			merged[ns+"."+key] = val
		}
	}

	return merged
}
