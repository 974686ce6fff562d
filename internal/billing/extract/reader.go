package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encodings attempted when reading a raw export, in order. The portal does
// not declare what it exports in; the first one that decodes wins.
var encodingNames = []string{"utf-8", "iso-8859-1", "windows-1252"}

func decodeWith(name string, raw []byte) ([]byte, error) {
	switch name {
	case "utf-8":
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("invalid utf-8 byte sequence")
		}
		return raw, nil
	case "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder().Bytes(raw)
	case "windows-1252":
		return charmap.Windows1252.NewDecoder().Bytes(raw)
	default:
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
}

// ReadRawCSV reads an export file trying each known encoding, with no
// header row: every line is data. Records keep their original field counts
// (the exports are ragged); padding is the normalizer's job. Returns the
// records and the encoding that decoded the file.
func ReadRawCSV(path string) ([][]string, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file %s: %w", path, err)
	}

	var decoded []byte
	var usedEncoding string
	for _, name := range encodingNames {
		b, err := decodeWith(name, raw)
		if err != nil {
			continue
		}
		decoded = b
		usedEncoding = name
		break
	}
	if usedEncoding == "" {
		return nil, "", fmt.Errorf("file %s is undecodable in any of %v", path, encodingNames)
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to parse csv %s: %w", path, err)
		}
		records = append(records, record)
	}
	return records, usedEncoding, nil
}
