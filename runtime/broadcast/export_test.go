package broadcast

// Reset clears the installed global for test isolation.
func Reset() { reset() }
