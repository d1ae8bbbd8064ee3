// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

// approximate number of bytes of one node: two ints plus an int32 (the int
// width is computed as uintSize is in the math/bits package).
const huddsize = (2*(32<<(^uint(0)>>32&1)) + 32) / 8 // 12 (32 bits) or 20 (64 bits)

// _MINFREENODES is the minimal percentage of nodes that has to be left after
// a garbage collect, unless a resize should be done instead.
const _MINFREENODES int = 20

// _MAXVAR is the maximal number of levels in a diagram. We use only the first
// 21 bits of the level field for encoding levels (so also the max number of
// variables); bit 21 holds the mark bit (markBit) and the remaining high bits
// are unused. Saturation is tracked in refRecord, not here. We always use int32 for levels to avoid surprises when the
// host architecture changes.
const _MAXVAR int32 = 0x1FFFFF

// markBit flags a node as visited during mark-sweep GC or DFS-based
// enumeration; folded into the level field to avoid a separate bitset.
const markBit int32 = 0x200000

const levelMask int32 = 0x1FFFFF

// _MAXREFCOUNT is the maximal value of the reference counter, also used to
// "stick" nodes that must never be collected (constants, literal nodes) in
// the table: a node at this count is saturated and reported to callers as
// having reference count -1.
const _MAXREFCOUNT int32 = 0x3FF

// _DEFAULTMAXNODEINC is the default maximal increase in the number of nodes
// during a single resize, approximately one million nodes.
const _DEFAULTMAXNODEINC int = 1 << 20

// Node is a reference to a vertex in a diagram (BDD or MDD). It is a plain,
// non-negative integer identifying a slot in the owning engine's node table.
// The zero value is not a valid Node produced by any constructor; use
// FalseNode/TrueNode for the terminals.
type Node int

const (
	// FalseNode is the address of the constant function False.
	FalseNode Node = 0
	// TrueNode is the address of the constant function True.
	TrueNode Node = 1
	// NoReplacement is the placeholder value used in compose/replacement
	// arrays to mean "leave this variable alone".
	NoReplacement Node = -1
)

// invalidNode is the internal sentinel used by recursive helpers to signal a
// failure without allocating; it is never exposed as a valid Node to a
// caller (public entry points translate it into an error).
const invalidNode int = -1

// chainEnd / freeListEnd terminate a hash-bucket chain or the table's free
// list. Terminals (ids 0 and 1) are never linked into either structure, so
// zero is a safe sentinel.
const chainEnd int = 0
