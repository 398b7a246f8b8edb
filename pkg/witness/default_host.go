//go:build !zkguest

package witness

import "github.com/rs/zerolog/log"

// Default returns the bound journal, or a logging sink when none is bound.
// Host builds never require a journal.
func Default() Sink {
	if journal != nil {
		return journal
	}
	return NewLogSink(log.Logger)
}
