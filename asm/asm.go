/*
Package asm renders byte tables as assembler source using the ".byte"
directive and "$" prefixed hexadecimal values, as accepted by ca65 and most
other 6502 assemblers.
*/
package asm

import (
	"fmt"
	"io"
	"strings"
)

// BytesPerLine is the number of values written on each .byte line
const BytesPerLine = 8

// Comment writes a single comment line
func Comment(w io.Writer, format string, a ...interface{}) error {
	_, err := fmt.Fprintf(w, "; "+format+"\n", a...)
	return err
}

func lines(sb *strings.Builder, b []byte) {
	for i := 0; i < len(b); i += BytesPerLine {
		end := i + BytesPerLine
		if end > len(b) {
			end = len(b)
		}
		sb.WriteString("\n\t.byte ")
		for j, v := range b[i:end] {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "$%02x", v)
		}
	}
}

// Table writes a label followed by the bytes of each block. Every block
// starts on a fresh line so a short final line never mixes two blocks.
func Table(w io.Writer, label string, blocks ...[]byte) error {
	var sb strings.Builder
	sb.WriteString(label)
	sb.WriteByte(':')
	for _, b := range blocks {
		lines(&sb, b)
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}
