package manifest

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmorrow/labkit/internal/errors"
	"github.com/jmorrow/labkit/internal/paths"
	"github.com/jmorrow/labkit/pkg/fileutil"
)

// formatVersion is the first header line of a manifest file.
const formatVersion = "%ECSV 1.0"

// Column declares a manifest column: its name and value type.
type Column struct {
	Name     string `yaml:"name"`
	Datatype string `yaml:"datatype"`
}

// header is the YAML document embedded in the commented manifest preamble.
type header struct {
	Delimiter string   `yaml:"delimiter"`
	Datatype  []Column `yaml:"datatype"`
}

// Table is a loaded manifest: a fixed column schema and the rows in file
// order.
type Table struct {
	Columns []Column
	Rows    []Row
}

// ColumnNames returns the column names in schema order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Write validates that rows share a uniform column schema and serializes
// them to dest as a typed tabular file, overwriting any existing file. The
// parent directory is created if needed and the write is atomic.
func Write(rows []Row, dest string) error {
	if len(rows) == 0 {
		return errors.New("refusing to write empty manifest")
	}

	cols := columnOrder(rows[0])
	schema := make([]Column, len(cols))
	for i, name := range cols {
		dt, err := datatypeOf(rows[0][name])
		if err != nil {
			return errors.Wrapf(err, "column %q", name)
		}
		schema[i] = Column{Name: name, Datatype: dt}
	}

	if err := checkSchema(rows, schema); err != nil {
		return err
	}

	var buf bytes.Buffer
	headerDoc, err := yaml.Marshal(header{Delimiter: ",", Datatype: schema})
	if err != nil {
		return errors.Wrap(err, "marshaling manifest header")
	}
	buf.WriteString("# " + formatVersion + "\n")
	buf.WriteString("# ---\n")
	for _, line := range strings.Split(strings.TrimRight(string(headerDoc), "\n"), "\n") {
		buf.WriteString("# " + line + "\n")
	}

	w := csv.NewWriter(&buf)
	if err := w.Write(cols); err != nil {
		return errors.Wrap(err, "writing column header")
	}
	record := make([]string, len(cols))
	for _, row := range rows {
		for i, name := range cols {
			record[i] = formatValue(row[name])
		}
		if err := w.Write(record); err != nil {
			return errors.Wrap(err, "writing row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "flushing rows")
	}

	if err := paths.EnsureDir(filepath.Dir(dest), 0); err != nil {
		return errors.Wrapf(err, "creating manifest directory for %s", dest)
	}
	return fileutil.AtomicWriteFile(dest, buf.Bytes(), 0o644)
}

// Load deserializes a manifest written by Write. The row sequence and column
// order are reproduced exactly.
func Load(src string) (*Table, error) {
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrManifestNotFound, "%s", src)
		}
		return nil, errors.Wrapf(err, "stating %s", src)
	}

	data, err := fileutil.ReadFileWithLimit(src)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", src)
	}

	// The header is the leading contiguous block of # lines. Everything after
	// it is CSV body verbatim; a quoted cell may itself contain lines that
	// start with #.
	lines := strings.Split(string(data), "\n")
	var headerLines []string
	bodyStart := 0
	for bodyStart < len(lines) && strings.HasPrefix(lines[bodyStart], "#") {
		line := lines[bodyStart]
		headerLines = append(headerLines, strings.TrimPrefix(strings.TrimPrefix(line, "#"), " "))
		bodyStart++
	}
	body := lines[bodyStart:]

	if len(headerLines) == 0 || !strings.Contains(headerLines[0], "%ECSV") {
		return nil, errors.Wrapf(errors.ErrManifestParse, "%s: missing %s header", src, formatVersion)
	}

	var hdr header
	if err := yaml.Unmarshal([]byte(strings.Join(headerLines[1:], "\n")), &hdr); err != nil {
		return nil, errors.Wrapf(errors.ErrManifestParse, "%s: bad header: %v", src, err)
	}
	if len(hdr.Datatype) == 0 {
		return nil, errors.Wrapf(errors.ErrManifestParse, "%s: header declares no columns", src)
	}

	r := csv.NewReader(strings.NewReader(strings.Join(body, "\n")))
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrManifestParse, "%s: %v", src, err)
	}
	if len(records) == 0 {
		return nil, errors.Wrapf(errors.ErrManifestParse, "%s: missing column row", src)
	}

	names := records[0]
	if len(names) != len(hdr.Datatype) {
		return nil, errors.Wrapf(errors.ErrManifestParse,
			"%s: column row has %d names, header declares %d", src, len(names), len(hdr.Datatype))
	}
	for i, c := range hdr.Datatype {
		if names[i] != c.Name {
			return nil, errors.Wrapf(errors.ErrManifestParse,
				"%s: column %d is %q in body but %q in header", src, i, names[i], c.Name)
		}
	}

	table := &Table{Columns: hdr.Datatype}
	for _, record := range records[1:] {
		if len(record) != len(hdr.Datatype) {
			return nil, errors.Wrapf(errors.ErrManifestParse,
				"%s: row has %d cells, want %d", src, len(record), len(hdr.Datatype))
		}
		row := make(Row, len(record))
		for i, cell := range record {
			value, err := parseValue(cell, hdr.Datatype[i].Datatype)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrManifestParse,
					"%s: column %q: %v", src, hdr.Datatype[i].Name, err)
			}
			row[hdr.Datatype[i].Name] = value
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// checkSchema verifies every row carries exactly the schema's columns with
// matching types.
func checkSchema(rows []Row, schema []Column) error {
	for i, row := range rows {
		if len(row) != len(schema) {
			return errors.Wrapf(errors.ErrSchemaMismatch,
				"row %d has %d columns, want %d", i, len(row), len(schema))
		}
		for _, col := range schema {
			value, ok := row[col.Name]
			if !ok {
				return errors.Wrapf(errors.ErrSchemaMismatch,
					"row %d is missing column %q", i, col.Name)
			}
			dt, err := datatypeOf(value)
			if err != nil {
				return errors.Wrapf(err, "row %d, column %q", i, col.Name)
			}
			if dt != col.Datatype {
				return errors.Wrapf(errors.ErrSchemaMismatch,
					"row %d, column %q is %s, want %s", i, col.Name, dt, col.Datatype)
			}
		}
	}
	return nil
}

func datatypeOf(v any) (string, error) {
	switch v.(type) {
	case string:
		return "string", nil
	case int, int64:
		return "int64", nil
	case float64:
		return "float64", nil
	case bool:
		return "bool", nil
	default:
		return "", errors.Newf("unsupported manifest value type %T", v)
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

func parseValue(cell, datatype string) (any, error) {
	switch datatype {
	case "string":
		return cell, nil
	case "int64":
		return strconv.ParseInt(cell, 10, 64)
	case "float64":
		return strconv.ParseFloat(cell, 64)
	case "bool":
		return strconv.ParseBool(cell)
	default:
		return nil, errors.Newf("unknown datatype %q", datatype)
	}
}
