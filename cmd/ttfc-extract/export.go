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

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/ttfc/sfnt"
	"seehuhn.de/go/ttfc/svg"
)

// exporter writes glyphs to SVG files.
type exporter struct {
	tmpl   *nameTemplate
	scale  float64
	svg    *svg.Options
	logger *slog.Logger

	jobs  []exportJob
	index map[string]int // output file name -> position in jobs
}

type exportJob struct {
	font  *sfnt.Font
	gid   int
	fname string
	skip  bool
}

// add schedules the glyphs of a font for export.
// If gid is negative, all glyphs are exported.
func (e *exporter) add(f *sfnt.Font, gid int) {
	start, end := gid, gid+1
	if gid < 0 {
		start, end = 0, f.NumGlyphs()
	}

	if e.index == nil {
		e.index = make(map[string]int)
	}
	for i := start; i < end; i++ {
		fname := e.tmpl.Execute(&nameVars{
			Index:     i,
			GlyphName: safeName(f.GlyphName(i)),
			FontName:  safeName(f.FontName()),
		})

		// Later glyphs overwrite earlier ones with the same file name.
		if prev, seen := e.index[fname]; seen {
			e.jobs[prev].skip = true
			e.logger.Warn("output file name used more than once",
				"file", fname, "glyph", i)
		}
		e.index[fname] = len(e.jobs)
		e.jobs = append(e.jobs, exportJob{font: f, gid: i, fname: fname})
	}
}

// run writes all scheduled files, using up to jobs goroutines.
// The names of the files written are returned in the order the glyphs were
// added.  Glyphs which cannot be decoded are logged and skipped.
func (e *exporter) run(ctx context.Context, jobs int) ([]string, error) {
	written := make([]bool, len(e.jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultJobs(jobs))
	for i := range e.jobs {
		job := &e.jobs[i]
		if job.skip {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ok, err := e.write(job)
			written[i] = ok
			return err
		})
	}
	err := g.Wait()

	var saved []string
	for i, ok := range written {
		if ok {
			saved = append(saved, e.jobs[i].fname)
		}
	}
	return saved, err
}

func (e *exporter) write(job *exportJob) (bool, error) {
	f, gid := job.font, job.gid

	if f.HasTrailingData(gid) {
		e.logger.Warn("non-zero data after glyph description",
			"font", f.FontName(), "glyph", gid)
	}

	g, err := f.Glyph(gid, e.scale)
	if err != nil {
		e.logger.Warn("cannot extract glyph",
			"font", f.FontName(), "glyph", gid, "error", err)
		return false, nil
	}

	out, err := os.Create(job.fname)
	if err != nil {
		return false, err
	}
	err = svg.Write(out, g, e.svg)
	err2 := out.Close()
	if err == nil {
		err = err2
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", job.fname, err)
	}
	return true, nil
}

// safeName removes path separators from names taken from font files.
func safeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, s)
}
