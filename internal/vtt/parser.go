package vtt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// ErrorHandling selects what the parser does with a malformed cue block.
type ErrorHandling int

const (
	// ErrorPass skips malformed blocks silently.
	ErrorPass ErrorHandling = iota
	// ErrorLog writes the block to ParseOptions.Diagnostics and skips it.
	ErrorLog
	// ErrorRaise stops parsing at the first malformed block.
	ErrorRaise
)

func (h ErrorHandling) String() string {
	switch h {
	case ErrorPass:
		return "pass"
	case ErrorLog:
		return "log"
	case ErrorRaise:
		return "raise"
	default:
		return fmt.Sprintf("ErrorHandling(%d)", int(h))
	}
}

// ParseErrorHandling maps "pass", "log" and "raise" to their mode.
func ParseErrorHandling(s string) (ErrorHandling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pass":
		return ErrorPass, nil
	case "log":
		return ErrorLog, nil
	case "raise":
		return ErrorRaise, nil
	default:
		return ErrorPass, fmt.Errorf("unsupported error handling %q: use pass, log, or raise", s)
	}
}

type ParseOptions struct {
	ErrorHandling ErrorHandling
	// Diagnostics receives ErrorLog output. Defaults to os.Stderr.
	Diagnostics io.Writer
}

// Parser reads cues from a WebVTT body one block at a time. It makes a
// single forward pass over its input and cannot be restarted.
//
//	p := vtt.NewParser(r, vtt.ParseOptions{})
//	for p.Next() {
//		cue := p.Cue()
//		...
//	}
//	if err := p.Err(); err != nil { ... }
type Parser struct {
	scanner   *bufio.Scanner
	opts      ParseOptions
	buffer    []string
	lineIndex int
	eol       string
	started   bool
	eof       bool
	done      bool
	cue       *Cue
	err       error
}

func NewParser(r io.Reader, opts ParseOptions) *Parser {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	scanner.Split(scanLinesKeepEOL)
	if opts.Diagnostics == nil {
		opts.Diagnostics = os.Stderr
	}
	return &Parser{scanner: scanner, opts: opts}
}

// Next advances to the next cue. It returns false at end of input or when
// parsing stopped on an error; see Err.
func (p *Parser) Next() bool {
	p.cue = nil
	for !p.done {
		line, ok := p.readLine()
		if !ok {
			if err := p.scanner.Err(); err != nil {
				p.err = fmt.Errorf("error reading vtt input: %w", err)
				p.done = true
				return false
			}
			// a final blank line flushes the last block
			line = "\n"
			p.eof = true
		}

		index := p.lineIndex
		p.lineIndex++
		if strings.TrimSpace(line) != "" {
			p.buffer = append(p.buffer, line)
			continue
		}

		source := p.buffer
		p.buffer = nil
		if p.eof {
			p.done = true
		}
		if len(source) == 0 || isMetadataBlock(source[0]) {
			continue
		}

		cue, err := ParseCue(source)
		if err == nil {
			p.cue = cue
			return true
		}
		if p.handleError(&ParseError{
			Line:  index,
			Block: strings.Join(source, ""),
			Err:   err,
		}) {
			p.done = true
			return false
		}
	}
	return false
}

func (p *Parser) Cue() *Cue {
	return p.cue
}

func (p *Parser) Err() error {
	return p.err
}

// EOL returns the line terminator of the first input line, or "" when it
// had none.
func (p *Parser) EOL() string {
	return p.eol
}

func (p *Parser) readLine() (string, bool) {
	if p.eof || !p.scanner.Scan() {
		return "", false
	}
	line := p.scanner.Text()
	if !p.started {
		p.started = true
		p.eol = detectEOL(line)
	}
	return line, true
}

// handleError reports whether parsing must stop.
func (p *Parser) handleError(err *ParseError) bool {
	switch p.opts.ErrorHandling {
	case ErrorRaise:
		p.err = err
		return true
	case ErrorLog:
		fmt.Fprintf(p.opts.Diagnostics, "vtt-%s(line %d): \n%s\n", Kind(err), err.Line, err.Block)
	}
	return false
}

// All parses the remaining input and returns every cue.
func (p *Parser) All() ([]*Cue, error) {
	var cues []*Cue
	for p.Next() {
		cues = append(cues, p.Cue())
	}
	return cues, p.Err()
}

// isMetadataBlock reports whether a block is the file header or a NOTE,
// STYLE or REGION block rather than a cue.
func isMetadataBlock(first string) bool {
	line := strings.TrimSpace(strings.TrimPrefix(first, "\ufeff"))
	if line == "" || strings.Contains(line, timestampSeparator) {
		return false
	}
	if strings.HasPrefix(line, "WEBVTT") {
		return true
	}
	switch strings.Fields(line)[0] {
	case "NOTE", "STYLE", "REGION":
		return true
	}
	return false
}

func detectEOL(line string) string {
	for _, eol := range []string{"\r\n", "\r", "\n"} {
		if strings.HasSuffix(line, eol) {
			return eol
		}
	}
	return ""
}

func defaultEOL() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// scanLinesKeepEOL is a bufio.SplitFunc that keeps \n, \r\n and \r line
// terminators on the returned tokens.
func scanLinesKeepEOL(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i+1], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i+2], nil
			}
			return i + 1, data[:i+1], nil
		}
		if !atEOF {
			return 0, nil, nil
		}
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
