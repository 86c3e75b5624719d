package vtt

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

const DefaultEncoding = "utf-8"

// longest marks first so UTF-32LE is not mistaken for UTF-16LE
var byteOrderMarks = []struct {
	bom      []byte
	encoding string
}{
	{[]byte{0xFF, 0xFE, 0x00, 0x00}, "utf-32le"},
	{[]byte{0x00, 0x00, 0xFE, 0xFF}, "utf-32be"},
	{[]byte{0xFF, 0xFE}, "utf-16le"},
	{[]byte{0xFE, 0xFF}, "utf-16be"},
	{[]byte{0xEF, 0xBB, 0xBF}, "utf-8"},
}

type OpenOptions struct {
	// Encoding overrides byte order mark detection.
	Encoding      string
	ErrorHandling ErrorHandling
	Diagnostics   io.Writer
}

type SaveOptions struct {
	Encoding       string
	EOL            string
	IncludeIndexes bool
}

// Open reads and parses a WebVTT file. Without an explicit encoding the
// byte order mark decides, falling back to UTF-8.
func Open(path string, opts OpenOptions) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open VTT file: %w", err)
	}

	name := opts.Encoding
	if name == "" {
		name = DetectEncoding(data)
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	data = stripBOM(data, name)

	f := &File{Path: path, Encoding: name}
	reader := transform.NewReader(bytes.NewReader(data), enc.NewDecoder())
	if err := f.Read(reader, ParseOptions{
		ErrorHandling: opts.ErrorHandling,
		Diagnostics:   opts.Diagnostics,
	}); err != nil {
		return nil, err
	}
	return f, nil
}

// Save writes the file to path, or to f.Path when path is empty.
func (f *File) Save(path string, opts SaveOptions) error {
	if path == "" {
		path = f.Path
	}
	if path == "" {
		return fmt.Errorf("no output path for VTT file")
	}
	name := opts.Encoding
	if name == "" {
		name = f.Encoding
	}
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create VTT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	encoder := transform.NewWriter(file, enc.NewEncoder())
	if err := f.Write(encoder, WriteOptions{
		EOL:            opts.EOL,
		IncludeIndexes: opts.IncludeIndexes,
	}); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode VTT file: %w", err)
	}
	return file.Close()
}

// DetectEncoding names the encoding announced by a byte order mark.
func DetectEncoding(data []byte) string {
	for _, mark := range byteOrderMarks {
		if bytes.HasPrefix(data, mark.bom) {
			return mark.encoding
		}
	}
	return DefaultEncoding
}

func stripBOM(data []byte, name string) []byte {
	for _, mark := range byteOrderMarks {
		if mark.encoding == name && bytes.HasPrefix(data, mark.bom) {
			return data[len(mark.bom):]
		}
	}
	return data
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-") {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "utf-16le", "utf-16-le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case "utf-16be", "utf-16-be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	case "utf-32le", "utf-32-le":
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM), nil
	case "utf-32be", "utf-32-be":
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	return enc, nil
}
