// The guest entry point: reads a CBOR proving input from stdin, verifies the
// partial tree, and commits the claim to the stdout journal. Build with the
// zkguest tag to require the journal binding.
package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ple1n/sparsetree/pkg/hasher"
	"github.com/ple1n/sparsetree/pkg/protocol"
	"github.com/ple1n/sparsetree/pkg/witness"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal().Err(err).Msg("read stdin")
	}

	input, err := protocol.Decode[hasher.Bytes32](data)
	if err != nil {
		log.Fatal().Err(err).Msg("decode proving input")
	}

	journal := witness.NewJournalSink(os.Stdout)
	witness.Bind(journal)

	if err := input.Verify(hasher.Sha256{}, journal); err != nil {
		log.Fatal().Err(err).Msg("verify partial tree")
	}

	log.Info().
		Int("nodes", len(input.PT.Tree)).
		Int("leaves", len(input.PT.Leaves)).
		Msg("partial tree verified, claim committed")
}
