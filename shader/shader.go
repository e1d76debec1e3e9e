// Package shader holds the WGSL programs of the filled and outline
// pipelines and compiles them to SPIR-V with naga.
//
// The programs are the GPU counterparts of shapes.VertexFilled,
// shapes.FragmentFilled, shapes.VertexOutline and shapes.FragmentOutline.
// Both use vs_main and fs_main as entry points.
package shader

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/filled.wgsl
var filledSource string

//go:embed shaders/outline.wgsl
var outlineSource string

// Entry point names shared by both programs.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// Program identifies one of the two WGSL programs.
type Program int

const (
	// Filled is the instanced gradient program (bind groups 0 and 1).
	Filled Program = iota
	// Outline is the solid white program (bind group 0 only).
	Outline
)

// Programs lists every program in a stable order.
var Programs = []Program{Filled, Outline}

// String returns the program name.
func (p Program) String() string {
	switch p {
	case Filled:
		return "filled"
	case Outline:
		return "outline"
	default:
		return fmt.Sprintf("Program(%d)", int(p))
	}
}

var (
	// ErrEmptySource is returned when a program's embedded source is empty.
	ErrEmptySource = errors.New("shader: source is empty")

	// ErrUnknownProgram is returned for a Program value outside Programs.
	ErrUnknownProgram = errors.New("shader: unknown program")

	// ErrInvalidSPIRV is returned when the compiler output is not a
	// well-formed SPIR-V word stream.
	ErrInvalidSPIRV = errors.New("shader: invalid SPIR-V output")
)

// Source returns the WGSL source of p.
func Source(p Program) (string, error) {
	var src string
	switch p {
	case Filled:
		src = filledSource
	case Outline:
		src = outlineSource
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownProgram, int(p))
	}
	if src == "" {
		return "", fmt.Errorf("%s: %w", p, ErrEmptySource)
	}
	return src, nil
}

// Compile compiles p to SPIR-V words.
func Compile(p Program) ([]uint32, error) {
	src, err := Source(p)
	if err != nil {
		return nil, err
	}
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", p, err)
	}
	words, err := toWords(spirvBytes)
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", p, err)
	}
	return words, nil
}

// CompileAll compiles every program, keyed by Program.
func CompileAll() (map[Program][]uint32, error) {
	out := make(map[Program][]uint32, len(Programs))
	for _, p := range Programs {
		words, err := Compile(p)
		if err != nil {
			return nil, err
		}
		out[p] = words
	}
	return out, nil
}

// toWords converts little-endian SPIR-V bytes to 32-bit words and checks
// the magic number.
func toWords(b []byte) ([]uint32, error) {
	if len(b) < 4 || len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSPIRV, len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	if words[0] != spirvMagic {
		return nil, fmt.Errorf("%w: magic 0x%08X", ErrInvalidSPIRV, words[0])
	}
	return words, nil
}
