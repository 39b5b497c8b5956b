// Package hir lowers the SystemVerilog syntax tree into the high-level
// intermediate representation consumed by name resolution, type checking
// and elaboration.
//
// Every lowered construct gets a NodeID. IDs are handed out in pre-order:
// a node is allocated before any of its children, and each ID records one
// parent, its rib. Following ribs upwards from a node visits exactly the
// declarations that precede it in program order, which is what later name
// lookup walks. HIR nodes reference children only by NodeID.
//
// Lowering is lazy and memoized: Context.Lower(id) lowers one node and
// allocates (but does not lower) its children. Context.LowerAll drives the
// whole unit by lowering IDs in allocation order until no new ones appear.
package hir

// NodeID identifies one lowered construct or synthetic rib. IDs are 1-based,
// dense and never reused.
type NodeID uint32

// NoNodeID (zero) is the sentinel for "absent".
const NoNodeID NodeID = 0

// IsValid returns true if the ID is valid (non-zero).
func (id NodeID) IsValid() bool { return id != NoNodeID }
