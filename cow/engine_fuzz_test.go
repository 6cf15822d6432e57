package cow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/cowlang/io"
)

const fuzzSteps = 512

func FuzzEngine(f *testing.F) {
	f.Add([]byte{6, 6, 6, 7, 5, 10, 0}, false)
	f.Add([]byte{2, 2, 1, 1, 1, 9, 9, 3}, false)
	f.Add([]byte{6, 6, 3, 4, 11, 0, 7}, true)
	f.Add([]byte{}, true)

	f.Fuzz(func(t *testing.T, code []byte, narrow bool) {
		assert := assert.New(t)

		ops := make([]Opcode, len(code))
		for n, c := range code {
			ops[n] = Opcode(c % OPCODE_COUNT)
		}

		buf := &io.Buffer{Capacity: fuzzSteps, Input: []uint32{'m', 'o', 0, 'O', 3}}

		var opts []Option
		if narrow {
			opts = append(opts, CellBits(8))
		}

		eng, err := NewEngine(NewProgram(ops...), buf, buf, opts...)
		assert.NoError(err)

		for range fuzzSteps {
			if eng.Completed() {
				break
			}

			err = eng.Advance()

			assert.Less(eng.Cursor(), len(eng.Tape()))
			assert.LessOrEqual(eng.Value(), eng.CellMax())

			if err != nil {
				// Failures leave the program counter on an instruction.
				assert.Less(eng.Pc(), len(ops))
				assert.False(eng.Completed())
				break
			}

			assert.LessOrEqual(eng.Pc(), len(ops))
		}
	})
}
