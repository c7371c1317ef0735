package export

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/osfs"
	log "github.com/sirupsen/logrus"

	"github.com/rudrasatani13/Sqlite-cli-tool/core"
	"github.com/rudrasatani13/Sqlite-cli-tool/render"
)

// Formats accepted by Save.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatTXT  = "txt"
)

// ErrUnknownFormat is returned before any file is touched when the format
// token is not one of csv, json, or txt.
var ErrUnknownFormat = errors.New("unsupported export format")

// Exporter writes result sets to export destinations: paths on the local
// filesystem, file:// URLs, and s3:// objects. It also opens script sources,
// which may additionally be http(s) URLs.
type Exporter struct {
	fs billy.Filesystem
	s3 S3Config
}

// S3Config carries the credentials and endpoint used for s3:// destinations.
// Empty fields fall back to the AWS default chain.
type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// New returns an Exporter rooted at fs for local destinations.
func New(fs billy.Filesystem, s3 S3Config) *Exporter {
	if fs == nil {
		fs = osfs.New(".")
	}
	return &Exporter{fs: fs, s3: s3}
}

// Save writes set to dest in the given format and returns the number of
// records written. An empty format means csv. The format is validated before
// the destination is opened, so an unknown format never leaves a file behind.
func (exporter *Exporter) Save(dest, format string, set core.ResultSet) (int, error) {
	write, err := writerFor(format)
	if err != nil {
		return 0, err
	}

	out, err := exporter.create(dest)
	if err != nil {
		return 0, fmt.Errorf("failed to save results: %w", err)
	}
	if err := write(out, set); err != nil {
		out.Close()
		return 0, fmt.Errorf("failed to save results: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("failed to save results: %w", err)
	}

	log.WithFields(log.Fields{
		"dest":    dest,
		"format":  format,
		"records": set.Len(),
	}).Debug("Saved results")

	return set.Len(), nil
}

func writerFor(format string) (func(io.Writer, core.ResultSet) error, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatCSV:
		return WriteCSV, nil
	case FormatJSON:
		return WriteJSON, nil
	case FormatTXT:
		return WriteTXT, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// WriteCSV writes one header record followed by one record per row.
func WriteCSV(w io.Writer, set core.ResultSet) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(set.Columns); err != nil {
		return err
	}
	for _, row := range set.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the set as a pretty-printed array of objects whose keys
// keep the original column order.
func WriteJSON(w io.Writer, set core.ResultSet) error {
	objects := make([]orderedRow, set.Len())
	for i, row := range set.Rows {
		objects[i] = orderedRow{columns: set.Columns, values: row}
	}

	data, err := json.MarshalIndent(objects, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteTXT writes the full fixed-width table, unpaginated and untruncated.
func WriteTXT(w io.Writer, set core.ResultSet) error {
	buf := bufio.NewWriter(w)
	render.Table(buf, set)
	return buf.Flush()
}

// orderedRow marshals one row as a JSON object in column order, which a map
// would not preserve.
type orderedRow struct {
	columns []string
	values  []string
}

func (row orderedRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, column := range row.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(column)
		if err != nil {
			return nil, err
		}
		value := ""
		if i < len(row.values) {
			value = row.values[i]
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
