package cow

// Opcode is a COW instruction. The numeric value is the opcode code, which
// is also what self-eval (mOO) decodes from a cell.
type Opcode int

const (
	OP_JUMP_BACKWARD  = Opcode(0)  // moo
	OP_CURSOR_BACK    = Opcode(1)  // mOo
	OP_CURSOR_FORWARD = Opcode(2)  // moO
	OP_EVAL           = Opcode(3)  // mOO
	OP_CHAR_IO        = Opcode(4)  // Moo
	OP_DECREMENT      = Opcode(5)  // MOo
	OP_INCREMENT      = Opcode(6)  // MoO
	OP_JUMP_FORWARD   = Opcode(7)  // MOO
	OP_ZERO           = Opcode(8)  // OOO
	OP_SWAP           = Opcode(9)  // MMM
	OP_INT_OUTPUT     = Opcode(10) // OOM
	OP_INT_INPUT      = Opcode(11) // oom

	OPCODE_COUNT = 12 // Number of opcodes.
)

var _opcode_text = [OPCODE_COUNT]string{
	"moo", "mOo", "moO", "mOO",
	"Moo", "MOo", "MoO", "MOO",
	"OOO", "MMM", "OOM", "oom",
}

var _opcode_describe = [OPCODE_COUNT]string{
	"jump back to matching MOO",
	"cursor back",
	"cursor forward",
	"execute cell as opcode",
	"read or write char",
	"decrement cell",
	"increment cell",
	"skip to matching moo if cell is zero",
	"zero cell",
	"swap cell with register",
	"write cell as integer",
	"read integer into cell",
}

var _opcode_lookup = func() map[string]Opcode {
	lookup := make(map[string]Opcode, OPCODE_COUNT)
	for n, text := range _opcode_text {
		lookup[text] = Opcode(n)
	}
	return lookup
}()

// ParseOpcode returns the opcode spelled exactly as text.
func ParseOpcode(text string) (op Opcode, ok bool) {
	op, ok = _opcode_lookup[text]
	return
}

// OpcodeOf returns the opcode with the code value.
func OpcodeOf(value uint32) (op Opcode, ok bool) {
	if value >= OPCODE_COUNT {
		return
	}

	return Opcode(value), true
}

// Valid returns true if op is one of the twelve opcodes.
func (op Opcode) Valid() bool {
	return op >= 0 && op < OPCODE_COUNT
}

// String returns the program text of the opcode.
func (op Opcode) String() string {
	if !op.Valid() {
		return f("Opcode(%d)", int(op))
	}
	return _opcode_text[op]
}

// Describe returns a short human readable description of the opcode.
func (op Opcode) Describe() string {
	if !op.Valid() {
		return f("invalid")
	}
	return f(_opcode_describe[op])
}
