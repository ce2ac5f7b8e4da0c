package bytecode

import (
	"encoding/json"
	"fmt"

	"github.com/risor-io/peg/op"
)

// Marshal converts a Program into a JSON representation.
func Marshal(p *Program) ([]byte, error) {
	return json.Marshal(stateFromProgram(p))
}

// Unmarshal converts a JSON representation into a Program. The result is
// verified before it is returned.
func Unmarshal(data []byte) (*Program, error) {
	var state programState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	p, err := programFromState(&state)
	if err != nil {
		return nil, err
	}
	if err := p.Verify(); err != nil {
		return nil, err
	}
	return p, nil
}

// MarshalJSON implements json.Marshaler.
func (p *Program) MarshalJSON() ([]byte, error) {
	return Marshal(p)
}

// Serialization types

type programState struct {
	ID           string           `json:"id"`
	Source       string           `json:"source,omitempty"`
	Instructions []instructionDef `json:"instructions"`
	Addresses    []int            `json:"addresses"`
}

type instructionDef struct {
	Op      string  `json:"op"`
	Pattern *string `json:"pattern,omitempty"`
	Count   *int    `json:"count,omitempty"`
	Target  *int    `json:"target,omitempty"`
	// Address is the resolved target, included for readers of the JSON.
	// It is ignored when unmarshaling.
	Address *int `json:"address,omitempty"`
}

func stateFromProgram(p *Program) *programState {
	state := &programState{
		ID:           p.id,
		Source:       p.source,
		Instructions: make([]instructionDef, 0, len(p.instructions)),
		Addresses:    copyInts(p.addresses),
	}
	if state.Addresses == nil {
		state.Addresses = []int{}
	}
	for i, inst := range p.instructions {
		def := instructionDef{Op: inst.Op.String()}
		switch inst.Op {
		case op.Match:
			pattern := inst.Pattern
			def.Pattern = &pattern
		case op.PackSequence:
			count := inst.Count
			def.Count = &count
		case op.BranchOnSuccess:
			target := int(inst.Target)
			def.Target = &target
			if addr, ok := p.TargetOf(i); ok {
				def.Address = &addr
			}
		}
		state.Instructions = append(state.Instructions, def)
	}
	return state
}

func programFromState(state *programState) (*Program, error) {
	instructions := make([]Instruction, 0, len(state.Instructions))
	for i, def := range state.Instructions {
		code, ok := opcodesByName[def.Op]
		if !ok {
			return nil, fmt.Errorf("instruction %d: unknown opcode %q", i, def.Op)
		}
		switch code {
		case op.Match:
			if def.Pattern == nil {
				return nil, fmt.Errorf("instruction %d: %s requires a pattern", i, def.Op)
			}
			instructions = append(instructions, Match(*def.Pattern))
		case op.PackSequence:
			if def.Count == nil {
				return nil, fmt.Errorf("instruction %d: %s requires a count", i, def.Op)
			}
			instructions = append(instructions, PackSequence(*def.Count))
		case op.BranchOnSuccess:
			if def.Target == nil {
				return nil, fmt.Errorf("instruction %d: %s requires a target", i, def.Op)
			}
			instructions = append(instructions, BranchOnSuccess(AddressRef(*def.Target)))
		}
	}
	return NewProgram(ProgramParams{
		ID:           state.ID,
		Source:       state.Source,
		Instructions: instructions,
		Addresses:    state.Addresses,
	}), nil
}

var opcodesByName = map[string]op.Code{
	op.Match.String():           op.Match,
	op.PackSequence.String():    op.PackSequence,
	op.BranchOnSuccess.String(): op.BranchOnSuccess,
}
