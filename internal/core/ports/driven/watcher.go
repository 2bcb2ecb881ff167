package driven

// InputWatcher observes the uploaded input files on disk so the client
// can flag results as stale when a file changes after analysis.
// Watching is advisory only; it never cancels in-flight requests.
type InputWatcher interface {
	// Watch replaces the watched set with the given file paths.
	Watch(paths ...string) error

	// Events emits the path of a watched file whenever it changes.
	Events() <-chan string

	// Close stops watching and releases resources.
	Close() error
}
