// Package repl runs the read-eval-print loop: one line in, one line out.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alttpo/yalisp"
	"github.com/alttpo/yalisp/config"
	"github.com/fatih/color"
	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
	"github.com/pkg/errors"
)

// Options control how a Session talks to its terminal.
type Options struct {
	// Interactive sessions print the banner and a prompt before each line.
	Interactive bool

	// Color paints the "Error:" prefix.
	Color bool

	// Logger receives debug output. Nil disables logging.
	Logger slog.Logger
}

// Session reads lines from in and writes one result line per input line to
// out.
type Session struct {
	cfg      *config.Config
	opts     Options
	parser   yalisp.Parser
	in       *bufio.Reader
	out      io.Writer
	log      slog.Logger
	errLabel *color.Color
}

// Stats counts the lines handled by Run.
type Stats struct {
	Lines  int
	Errors int
}

// New returns a Session. cfg must be valid.
func New(cfg *config.Config, in io.Reader, out io.Writer, opts Options) *Session {
	var p yalisp.Parser = yalisp.LenientParser
	if cfg.Strict {
		p = yalisp.StrictParser
	}

	l := opts.Logger
	if l == nil {
		l = logger.NewNopLogger()
	}

	label := color.New(color.FgRed, color.Bold)
	if opts.Color {
		label.EnableColor()
	} else {
		label.DisableColor()
	}

	return &Session{
		cfg:      cfg,
		opts:     opts,
		parser:   p,
		in:       bufio.NewReaderSize(in, cfg.BufferSize+1),
		out:      out,
		log:      l,
		errLabel: label,
	}
}

// Eval parses and evaluates one line.
func (s *Session) Eval(line []byte) (yalisp.Value, error) {
	start := time.Now()
	v, err := yalisp.Interpret(s.parser, line)
	s.log.Debugf("evaluated %q in %s", line, time.Since(start))
	return v, err
}

// Render evaluates one line and returns the text to print for it, without
// a trailing newline.
func (s *Session) Render(line []byte) (string, bool) {
	v, err := s.Eval(line)
	if err != nil {
		return s.renderError(err), false
	}
	return v.String(), true
}

func (s *Session) renderError(err error) string {
	return s.errLabel.Sprint("Error:") + " " + err.Error()
}

// Run loops until in is exhausted or ctx is done. A failing line never
// ends the session; only read and write errors do.
func (s *Session) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	if s.opts.Interactive && s.cfg.ShowBanner {
		for _, b := range s.cfg.Banner {
			if _, err := fmt.Fprintln(s.out, b); err != nil {
				return stats, errors.Wrap(err, "write banner")
			}
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if s.opts.Interactive {
			if _, err := io.WriteString(s.out, s.cfg.Prompt); err != nil {
				return stats, errors.Wrap(err, "write prompt")
			}
		}

		line, tooLong, err := s.readLine()
		if err == io.EOF {
			if s.opts.Interactive {
				// leave the terminal on a fresh line after the last prompt
				_, _ = io.WriteString(s.out, "\n")
			}
			s.log.Debugf("end of input after %d lines, %d errors", stats.Lines, stats.Errors)
			return stats, nil
		}
		if err != nil {
			return stats, errors.Wrap(err, "read line")
		}
		stats.Lines++

		var text string
		ok := false
		if tooLong {
			s.log.Warningf("line %d exceeds %d bytes", stats.Lines, s.cfg.BufferSize)
			text = s.renderError(fmt.Errorf("input line exceeds %d bytes", s.cfg.BufferSize))
		} else {
			text, ok = s.Render(line)
		}
		if !ok {
			stats.Errors++
		}

		if _, err := fmt.Fprintln(s.out, text); err != nil {
			return stats, errors.Wrap(err, "write result")
		}
	}
}

// readLine returns the next line without its terminator. Lines longer than
// the configured buffer are drained and reported with tooLong set.
func (s *Session) readLine() (line []byte, tooLong bool, err error) {
	read := false
	for {
		frag, isPrefix, rerr := s.in.ReadLine()
		if rerr != nil {
			if rerr == io.EOF && read {
				return line, tooLong, nil
			}
			return nil, false, rerr
		}
		read = true

		if !tooLong {
			if len(line)+len(frag) > s.cfg.BufferSize {
				tooLong = true
				line = nil
			} else {
				line = append(line, frag...)
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}
