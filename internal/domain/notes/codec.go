package notes

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/gzip"
)

// api keeps HTML unescaped so markdown such as <details> survives verbatim
var api = sonic.Config{
	EscapeHTML:       false,
	SortMapKeys:      true,
	CompactMarshaler: true,
	NoNullSliceOrMap: true,
	ValidateString:   true,
}.Froze()

// Marshal encodes v as indented JSON with a trailing newline. Struct field
// order is the output contract, so equal inputs give identical bytes.
func Marshal(v interface{}) ([]byte, error) {
	data, err := api.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode release notes: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal decodes a ReleaseNotes document
func Unmarshal(data []byte) (*ReleaseNotes, error) {
	var rn ReleaseNotes
	if err := api.Unmarshal(data, &rn); err != nil {
		return nil, fmt.Errorf("decode release notes: %w", err)
	}
	if rn.Features == nil {
		rn.Features = []Feature{}
	}
	if rn.Version == "" {
		rn.Version = UnknownVersion
	}
	return &rn, nil
}

// UnmarshalTranslated decodes a TranslatedNotes document
func UnmarshalTranslated(data []byte) (*TranslatedNotes, error) {
	var tn TranslatedNotes
	if err := api.Unmarshal(data, &tn); err != nil {
		return nil, fmt.Errorf("decode translated notes: %w", err)
	}
	return &tn, nil
}

// WriteFile writes v to path, gzip-compressed when path ends in .gz.
// A path of "-" writes to w.
func WriteFile(path string, w io.Writer, v interface{}) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}

	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}

	if strings.HasSuffix(path, ".gz") {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return fmt.Errorf("compress %s: %w", path, err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("compress %s: %w", path, err)
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads a JSON document, transparently decompressing .gz files
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !strings.HasSuffix(path, ".gz") {
		return data, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	return out, nil
}
