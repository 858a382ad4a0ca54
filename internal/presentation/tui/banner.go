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
	{"                 _ _", "#38bdf8"},
	{"   ___ ___  __| | | __ _  ___ _ __", "#22d3ee"},
	{"  / __/ __|/ _` | |/ _` |/ _ \\ '_ \\", "#2dd4bf"},
	{" | (__\\__ \\ (_| | | (_| |  __/ | | |", "#34d399"},
	{"  \\___|___/\\__,_|_|\\__, |\\___|_| |_|", "#4ade80"},
	{"                   |___/", "#a3e635"},
}

// PrintBanner writes the csdlgen ASCII banner to w using the given color profile.
func PrintBanner(w io.Writer, p termenv.Profile) {
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, p.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}
