// Package cow implements the execution engine for the COW esoteric language.
//
// A program is a sequence of twelve three-letter opcodes (moo, mOo, moO, mOO,
// Moo, MOo, MoO, MOO, OOO, MMM, OOM, oom) operating on a tape of unsigned
// cells that grows to the right, a single-value register, and character or
// integer I/O through host supplied capabilities.
//
// The Engine is strictly synchronous. Advance executes one instruction, Run
// executes until the program completes or the first error. The Engine does
// no logging or file I/O of its own. Hosts drive it and inspect its state
// through the accessors.
package cow
