package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusCreated statusKind = iota
	statusUnchanged
)

func (k statusKind) label() string {
	if k == statusUnchanged {
		return "Up to date:"
	}
	return "Created:"
}

func (k statusKind) colors() text.Colors {
	if k == statusUnchanged {
		return text.Colors{text.FgHiBlack}
	}
	return text.Colors{text.FgGreen, text.Bold}
}

func printStatus(w io.Writer, kind statusKind, path string) {
	label := kind.label()
	if isTerminal(w) {
		label = kind.colors().Sprint(label)
	}
	fmt.Fprintln(w, label, path)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
