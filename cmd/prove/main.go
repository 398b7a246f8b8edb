package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ple1n/sparsetree/config"
	"github.com/ple1n/sparsetree/pkg/hasher"
	"github.com/ple1n/sparsetree/pkg/protocol"
	"github.com/ple1n/sparsetree/pkg/smt"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 3 {
		fmt.Println("Usage: go run ./cmd/prove <leaf-file> <slot[,slot...]> [sha256|keccak]")
		fmt.Println()
		fmt.Println("Builds a sparse Merkle tree from the 32-byte chunks of <leaf-file>,")
		fmt.Println("batch-proves the given leaf slots, and writes proving_input.cbor.")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("read leaf file")
	}

	slots, err := parseSlots(os.Args[2])
	if err != nil {
		log.Fatal().Err(err).Msg("parse slots")
	}

	var h smt.Hasher[hasher.Bytes32] = hasher.Sha256{}
	if len(os.Args) > 3 {
		switch os.Args[3] {
		case "sha256":
			h = hasher.Sha256{}
		case "keccak":
			h = hasher.Keccak256{}
		default:
			log.Fatal().Str("hash", os.Args[3]).Msg("unknown hash (want sha256 or keccak)")
		}
	}

	leaves := splitLeaves(data)
	tree, err := smt.NewSequential(leaves, h, hasher.Bytes32{}, config.DefaultHeight)
	if err != nil {
		log.Fatal().Err(err).Msg("build tree")
	}
	root := tree.Root()
	log.Info().Int("leaves", len(leaves)).Hex("root", root[:]).Msg("tree built")

	partial, err := tree.BatchProve(slots)
	if err != nil {
		log.Fatal().Err(err).Msg("batch prove")
	}

	input := protocol.ProvingInput[hasher.Bytes32]{
		PT:    *partial,
		Claim: protocol.ProofClaims[hasher.Bytes32]{Root: root},
	}

	encoded, err := protocol.Encode(input)
	if err != nil {
		log.Fatal().Err(err).Msg("encode proving input")
	}
	if err := os.WriteFile("proving_input.cbor", encoded, 0644); err != nil {
		log.Fatal().Err(err).Msg("write proving input")
	}
	log.Info().Int("bytes", len(encoded)).Int("nodes", len(partial.Tree)).Msg("proving input written")
}

// splitLeaves cuts the data into 32-byte leaves, zero-padding the tail.
func splitLeaves(data []byte) []hasher.Bytes32 {
	leaves := make([]hasher.Bytes32, 0, (len(data)+31)/32)
	for i := 0; i < len(data); i += 32 {
		var leaf hasher.Bytes32
		copy(leaf[:], data[i:])
		leaves = append(leaves, leaf)
	}
	return leaves
}

func parseSlots(arg string) ([]uint64, error) {
	parts := strings.Split(arg, ",")
	slots := make([]uint64, 0, len(parts))
	for _, p := range parts {
		s, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("slot %q: %w", p, err)
		}
		slots = append(slots, s)
	}
	return slots, nil
}
