// Package witness carries the public inputs of a verification run to the
// surrounding prover. In zk-guest builds committed values land in a journal
// the host binds; in regular builds they go to the bound journal if there is
// one and are logged otherwise. The values and
// their order are identical in both modes.
package witness

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog"
)

// Sink is a write-only channel for public inputs. Commit must preserve call
// order; the surrounding prover binds the committed sequence.
type Sink interface {
	Commit(v any) error
}

// encMode is the deterministic CBOR encoding shared by every journal:
// canonical ascending map keys, no floating-point shenanigans.
var encMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// JournalSink appends the canonical CBOR encoding of every committed value
// to a writer. This is the journal the guest exposes to the host.
type JournalSink struct {
	enc *cbor.Encoder
}

// NewJournalSink returns a sink writing CBOR frames to w.
func NewJournalSink(w io.Writer) *JournalSink {
	return &JournalSink{enc: encMode.NewEncoder(w)}
}

// Commit serializes v into the journal.
func (s *JournalSink) Commit(v any) error {
	if err := s.enc.Encode(v); err != nil {
		return fmt.Errorf("commit to journal: %w", err)
	}
	return nil
}

// LogSink logs committed values instead of serializing them. It is the
// default witness channel outside zk-guest builds.
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink returns a sink logging every commit through log.
func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

// Commit logs the committed value and always succeeds.
func (s *LogSink) Commit(v any) error {
	switch vv := v.(type) {
	case []uint64:
		s.log.Info().Int("leaves", len(vv)).Msg("witness commit")
	default:
		s.log.Info().Type("type", v).Msg("witness commit")
	}
	return nil
}

// journal is the process-wide sink bound by the host or guest entry point.
var journal Sink

// Bind installs the process-wide journal used by Default.
func Bind(s Sink) {
	journal = s
}
