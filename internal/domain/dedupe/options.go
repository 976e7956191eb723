// Package dedupe removes near-duplicate candidate items by title similarity.
package dedupe

// Option applies a configuration option to the titleDeduper.
type Option func(*titleDeduper)

// WithThreshold overrides the similarity cutoff. Values outside (0, 1]
// are ignored and the default stands.
func WithThreshold(threshold float64) Option {
	return func(d *titleDeduper) {
		if threshold > 0 && threshold <= 1 {
			d.threshold = threshold
		}
	}
}
