package emulator

import (
	"io"

	"gopkg.in/yaml.v3"
)

// State is a snapshot of the emulator, for display or dumping.
type State struct {
	Pc        int      `yaml:"pc"`
	Opcode    string   `yaml:"opcode,omitempty"`
	Line      int      `yaml:"line,omitempty"`
	Cursor    int      `yaml:"cursor"`
	Value     uint32   `yaml:"value"`
	Register  *uint32  `yaml:"register"`
	Tape      []uint32 `yaml:"tape,flow"`
	Steps     int      `yaml:"steps"`
	Completed bool     `yaml:"completed"`
}

// State returns a snapshot of the emulator.
func (emu *Emulator) State() (state State) {
	state = State{
		Pc:        emu.Pc(),
		Line:      emu.LineNo(),
		Cursor:    emu.Cursor(),
		Value:     emu.Value(),
		Tape:      emu.Tape(),
		Steps:     emu.Steps,
		Completed: emu.Completed(),
	}

	if op, ok := emu.Current(); ok {
		state.Opcode = op.String()
	}

	if value, ok := emu.Register(); ok {
		state.Register = &value
	}

	return
}

// Dump writes the emulator state as YAML.
func (emu *Emulator) Dump(w io.Writer) (err error) {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err = enc.Encode(emu.State())
	if err != nil {
		return
	}

	return enc.Close()
}
