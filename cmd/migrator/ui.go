package main

import (
	"encoding/json"
	"fmt"
	"io"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
)

// printer writes user-facing CLI output. Colors are off for non-terminals.
type printer struct {
	w     io.Writer
	color bool
}

func (p printer) line(color, symbol, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if p.color {
		fmt.Fprintf(p.w, "%s%s %s%s\n", color, symbol, msg, colorReset)
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", symbol, msg)
}

func (p printer) Info(format string, a ...interface{})    { p.line(colorBlue, "ℹ", format, a...) }
func (p printer) Success(format string, a ...interface{}) { p.line(colorGreen, "✓", format, a...) }
func (p printer) Warning(format string, a ...interface{}) { p.line(colorYellow, "⚠", format, a...) }
func (p printer) Error(format string, a ...interface{})   { p.line(colorRed, "✗", format, a...) }

// JSON prints v indented
func (p printer) JSON(v interface{}) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
