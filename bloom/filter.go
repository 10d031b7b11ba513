// Package bloom tracks URLs already handled during a batch add so
// duplicate list entries are fetched only once.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a set-like membership tracker for URL strings. It may
// report a URL as present that was never recorded (false positive),
// but never the reverse.
type Filter struct {
	urls *bloom.BloomFilter
}

// NewFilter sizes the underlying filter for n expected URLs at the
// given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{urls: bloom.NewWithEstimates(n, fpRate)}
}

// Seen records url and reports whether it had been recorded before.
func (f *Filter) Seen(url string) bool {
	prior := f.urls.TestString(url)
	f.urls.AddString(url)
	return prior
}

// Count approximates how many distinct URLs have been recorded.
func (f *Filter) Count() uint {
	return uint(f.urls.ApproximatedSize())
}
