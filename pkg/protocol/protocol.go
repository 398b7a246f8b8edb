// Package protocol defines the wire envelope shipped from the proving host
// to the verifier: a partial tree plus the claim the verifier commits after
// success. Encoding is deterministic, self-describing CBOR with canonical
// ascending map keys.
package protocol

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/ple1n/sparsetree/pkg/smt"
	"github.com/ple1n/sparsetree/pkg/witness"
)

// ErrClaimMismatch is returned when the claimed root of the envelope differs
// from the root carried by the partial tree itself.
var ErrClaimMismatch = errors.New("claim root does not match partial tree root")

// ProofClaims is the authoritative public input: the root the verifier
// commits after a successful run.
type ProofClaims[F comparable] struct {
	Root F `cbor:"root"`
}

// ProvingInput is the transported envelope.
type ProvingInput[F comparable] struct {
	PT    smt.PartialTree[F] `cbor:"pt"`
	Claim ProofClaims[F]     `cbor:"claim"`
}

var encMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// Encode serializes the envelope to canonical CBOR.
func Encode[F comparable](in ProvingInput[F]) ([]byte, error) {
	data, err := encMode.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode proving input: %w", err)
	}
	return data, nil
}

// Decode parses an envelope produced by Encode.
func Decode[F comparable](data []byte) (ProvingInput[F], error) {
	var in ProvingInput[F]
	if err := cbor.Unmarshal(data, &in); err != nil {
		return ProvingInput[F]{}, fmt.Errorf("decode proving input: %w", err)
	}
	return in, nil
}

// Verify checks that the claim matches the partial tree, verifies the
// partial tree against the hasher, and commits the claim to the sink.
func (in *ProvingInput[F]) Verify(hasher smt.Hasher[F], sink witness.Sink) error {
	if in.Claim.Root != in.PT.Root {
		return ErrClaimMismatch
	}
	if err := in.PT.VerifyWithSink(hasher, sink); err != nil {
		return err
	}
	return sink.Commit(in.Claim)
}
