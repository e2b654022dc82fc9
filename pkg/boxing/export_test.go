package boxing

// resetCaches drops every cached method identifier. Production code never
// invalidates the caches; tests need a clean slate to exercise first-use
// resolution paths more than once per test binary.
func resetCaches() {
	for _, c := range allCaches {
		c.id.Store(nil)
	}
}
