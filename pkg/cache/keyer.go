package cache

// ArtifactKeyOpts carries every option that shapes a rendered artifact.
// Anything that changes the output bytes must appear here, otherwise two
// different renders would share a key.
type ArtifactKeyOpts struct {
	// Format is the output format, "dot" or "svg".
	Format string

	// Rankdir is the graph orientation.
	Rankdir string

	// Values reports whether current values are drawn into node labels.
	Values bool

	// Sets holds the input overrides applied before rendering. Callers
	// leave it nil unless Values is set, since overrides cannot change a
	// topology-only artifact.
	Sets map[string]float32
}

// Keyer builds cache keys. Centralizing key construction keeps every
// component deriving keys the same way, so a format change cannot strand
// old entries silently serving wrong content.
type Keyer interface {
	// ArtifactKey returns the key for a rendered artifact of the script
	// with the given source hash.
	ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the script fingerprint together with all render
// options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", scriptHash, opts)
}
