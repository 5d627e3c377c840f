package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"                  _                          _     ", "#34d399"},
	{"   ___ _ __  (_) __ _ _ __ __ _ _ __ | |__  ", "#2dd4bf"},
	{"  / _ \\ '_ \\ | |/ _` | '__/ _` | '_ \\| '_ \\ ", "#22d3ee"},
	{" |  __/ |_) || | (_| | | | (_| | |_) | | | |", "#38bdf8"},
	{"  \\___| .__/ |_|\\__, |_|  \\__,_| .__/|_| |_|", "#60a5fa"},
	{"      |_|       |___/          |_|          ", "#818cf8"},
}

// PrintBanner writes the epigraph ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
