package config

const (
	DefaultHeight = 32 // 2^32 leaf slots
	ElementSize   = 31 // bytes packed per field element

	// CircuitTreeHeight is the fixed number of path levels verified in-circuit.
	CircuitTreeHeight = 20
)
