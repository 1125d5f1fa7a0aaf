// seehuhn.de/go/ttfc - extract TrueType glyph outlines as SVG
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Ttfc-extract writes the glyphs of a TrueType font or font collection as
// SVG files.
//
// Usage:
//
//	ttfc-extract [options] <file>
//
// By default every glyph of every font in the file is written to a file
// named after the glyph index.  Use -g and -f to select a single glyph or a
// single font of a collection, and -o to choose the output file names.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"seehuhn.de/go/ttfc/fonterror"
	"seehuhn.de/go/ttfc/internal/buildinfo"
	"seehuhn.de/go/ttfc/sfnt"
	"seehuhn.de/go/ttfc/svg"
)

const toolName = "ttfc-extract"

// Exit codes.
const (
	exitOK    = 0
	exitUsage = 1
	exitFont  = 2
)

type options struct {
	Version bool `short:"v" help:"Show the version number and exit."`
	Quiet   bool `short:"q" help:"Be silent on success."`

	Glyph  int     `short:"g" default:"-1" placeholder:"INDEX" help:"Extract only the glyph with this index.  A negative value selects all glyphs."`
	Font   int     `short:"f" default:"-1" placeholder:"INDEX" help:"Extract only glyphs from this font of a collection.  A negative value selects all fonts."`
	Scale  float64 `short:"s" default:"0.10" help:"Scale factor from font design units to SVG units."`
	Output string  `short:"o" default:"{index}.svg" placeholder:"NAME" help:"Output file name.  The fields {index}, {gname} and {fname} are replaced by the glyph index, the glyph name and the font name.  Python-style format specifications like {index:0>4x} can be used.  Use {{ and }} for literal braces."`

	Fill        string  `default:"black" help:"Fill colour, or \"none\"."`
	Stroke      string  `default:"black" help:"Stroke colour, or \"none\"."`
	StrokeWidth float64 `default:"2" help:"Stroke width in SVG units."`
	Smooth      bool    `help:"Use the SVG \"T\" command where possible."`
	Jobs        int     `short:"j" default:"0" help:"Number of files written in parallel (0 means one per CPU)."`

	File string `arg:"" name:"file" help:"A TrueType font (.ttf) or font collection (.ttc)."`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Handle -v before the argument parser, so that no file name is needed.
	for _, arg := range args {
		if arg == "-v" || arg == "--version" {
			fmt.Fprintln(stdout, buildinfo.Version(toolName))
			return exitOK
		}
	}

	var opt options
	parser, err := kong.New(&opt,
		kong.Name(toolName),
		kong.Description("Extract font glyphs from TTF/TTC files in SVG format."),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		panic(err)
	}
	if _, err := parser.Parse(joinNegative(args)); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", toolName, err)
		fmt.Fprintf(stderr, "`%s -h' for help message.\n", toolName)
		return exitUsage
	}

	logger := newLogger(stderr, opt.Quiet)

	tmpl, err := parseTemplate(opt.Output)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", toolName, err)
		return exitUsage
	}
	svgOpt, err := opt.svgOptions()
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", toolName, err)
		return exitUsage
	}

	data, err := os.ReadFile(opt.File)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFont
	}
	kind, err := sfnt.Detect(data)
	if err != nil {
		reportFormat(stderr, data, err)
		return exitFont
	}
	fonts, err := sfnt.ReadAll(data, nil)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintf(stderr, "Unexpected error occurred while reading the %s file.\n",
			strings.ToUpper(kind.String()))
		return exitFont
	}

	if kind == sfnt.KindCollection && opt.Font >= 0 {
		if opt.Font < len(fonts) {
			fonts = fonts[opt.Font : opt.Font+1]
		} else {
			fonts = nil
		}
	}

	e := &exporter{
		tmpl:   tmpl,
		scale:  opt.Scale,
		svg:    svgOpt,
		logger: logger,
	}
	status := exitOK
	for fontIdx, f := range fonts {
		if opt.Glyph >= f.NumGlyphs() {
			logger.Error("glyph index out of range",
				"font", fontIdx, "glyph", opt.Glyph, "numGlyphs", f.NumGlyphs())
			status = exitUsage
			continue
		}
		e.add(f, opt.Glyph)
	}

	saved, err := e.run(context.Background(), opt.Jobs)
	if !opt.Quiet {
		for _, name := range saved {
			fmt.Fprintln(stdout, "Saved:", name)
		}
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, "Unexpected error occurred while saving SVGs.")
		return exitFont
	}
	return status
}

// numericFlags maps the flags which take a number to their long form.
var numericFlags = map[string]string{
	"-g": "--glyph", "--glyph": "--glyph",
	"-f": "--font", "--font": "--font",
	"-s": "--scale", "--scale": "--scale",
	"-j": "--jobs", "--jobs": "--jobs",
	"--stroke-width": "--stroke-width",
}

// joinNegative rewrites "-g -1" as "--glyph=-1", since kong would read
// the negative number as a short flag.
func joinNegative(args []string) []string {
	res := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(res, args[i:]...)
		}
		long, ok := numericFlags[arg]
		if ok && i+1 < len(args) && isNegative(args[i+1]) {
			res = append(res, long+"="+args[i+1])
			i++
			continue
		}
		res = append(res, arg)
	}
	return res
}

func isNegative(s string) bool {
	if !strings.HasPrefix(s, "-") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func (opt *options) svgOptions() (*svg.Options, error) {
	fill, err := svg.ParseColor(opt.Fill)
	if err != nil {
		return nil, fmt.Errorf("invalid fill colour: %w", err)
	}
	stroke, err := svg.ParseColor(opt.Stroke)
	if err != nil {
		return nil, fmt.Errorf("invalid stroke colour: %w", err)
	}
	if opt.StrokeWidth < 0 {
		return nil, fmt.Errorf("invalid stroke width %g", opt.StrokeWidth)
	}
	if opt.Scale <= 0 {
		return nil, fmt.Errorf("invalid scale %g", opt.Scale)
	}

	res := svg.DefaultOptions()
	res.Fill = fill
	res.Stroke = stroke
	res.StrokeWidth = opt.StrokeWidth
	res.Smooth = opt.Smooth
	return res, nil
}

func reportFormat(w io.Writer, data []byte, err error) {
	switch {
	case errors.Is(err, fonterror.ErrUnsupportedFlavor):
		fmt.Fprintln(w, "This program cannot handle the font format.")
	default:
		fmt.Fprintln(w, "This file is written in unexpected format.")
	}
	if len(data) >= 4 {
		fmt.Fprintf(w, "Magic: %q\n", data[:4])
	} else {
		fmt.Fprintln(w, err)
	}
}

// newLogger returns a logger for warnings about individual glyphs.  Output
// is human readable when w is a terminal, and JSON otherwise.
func newLogger(w io.Writer, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	if quiet {
		level = slog.LevelError
	}
	hOpt := &slog.HandlerOptions{Level: level}

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, hOpt))
	}
	return slog.New(slog.NewJSONHandler(w, hOpt))
}

func defaultJobs(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}
