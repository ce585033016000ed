// Package bytecode defines the whisk virtual machine's instruction set, the
// compiled program layout and its binary artifact format.
//
// Functions are ordered lists of instructions addressed from 0. Jumps carry
// a signed displacement relative to the instruction after the jump, so a
// jump at index j with displacement d continues at j+1+d.
package bytecode
