package parcels

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// All code interacting with files is here

const (
	Sep        = ','
	DateFormat = "2006-01-02"
	Header     = true
)

type Files struct {
	Sep         rune
	DateFormat  string
	FloatFormat string // "" writes the shortest representation that reads back bit-identically
	Header      bool
	TextFields  []string
}

type FileOpt func(f *Files) error

func NewFiles(opts ...FileOpt) (*Files, error) {
	f := &Files{
		Sep:        Sep,
		DateFormat: DateFormat,
		Header:     Header,
	}

	for _, opt := range opts {
		if e := opt(f); e != nil {
			return nil, e
		}
	}

	return f, nil
}

// ***************** Setters *****************

func FileSep(sep rune) FileOpt {
	return func(f *Files) error {
		if sep == '"' || sep == '\n' || sep == '\r' {
			return fmt.Errorf("invalid separator %q", sep)
		}

		f.Sep = sep
		return nil
	}
}

func FileDateFormat(format string) FileOpt {
	return func(f *Files) error {
		f.DateFormat = format
		return nil
	}
}

func FileFloatFormat(format string) FileOpt {
	return func(f *Files) error {
		f.FloatFormat = format
		return nil
	}
}

func FileHeader(header bool) FileOpt {
	return func(f *Files) error {
		f.Header = header
		return nil
	}
}

// FileTextFields names columns that are read as DTstring without type inference.
func FileTextFields(names ...string) FileOpt {
	return func(f *Files) error {
		f.TextFields = append(f.TextFields, names...)
		return nil
	}
}

// ***************** Read *****************

func (f *Files) Load(fileName string) (*DF, error) {
	var (
		file *os.File
		e    error
	)
	if file, e = os.Open(fileName); e != nil {
		return nil, e
	}
	defer file.Close()

	var df *DF
	if df, e = f.Read(file); e != nil {
		return nil, errors.Wrapf(e, "loading %s", fileName)
	}

	return df, nil
}

func (f *Files) Read(r io.Reader) (*DF, error) {
	rdr := csv.NewReader(r)
	rdr.Comma = f.Sep
	rdr.ReuseRecord = false

	var (
		records [][]string
		e       error
	)
	if records, e = rdr.ReadAll(); e != nil {
		return nil, e
	}

	if len(records) == 0 {
		return nil, errors.Wrap(ErrSchema, "empty file")
	}

	var names []string
	if f.Header {
		names, records = records[0], records[1:]
	} else {
		for ind := range records[0] {
			names = append(names, fmt.Sprintf("c%d", ind))
		}
	}

	return FromRecords(names, records, f.TextFields...)
}

// ***************** Write *****************

func (f *Files) Save(fileName string, df *DF) error {
	var (
		file *os.File
		e    error
	)
	if file, e = os.Create(fileName); e != nil {
		return e
	}

	if e = f.Write(file, df); e != nil {
		_ = file.Close()
		return errors.Wrapf(e, "saving %s", fileName)
	}

	return file.Close()
}

func (f *Files) Write(w io.Writer, df *DF) error {
	wtr := csv.NewWriter(w)
	wtr.Comma = f.Sep

	if f.Header {
		if e := wtr.Write(df.ColumnNames()); e != nil {
			return e
		}
	}

	cols := df.Columns()
	line := make([]string, len(cols))
	for row := 0; row < df.RowCount(); row++ {
		for ind, col := range cols {
			line[ind] = f.format(col.Vector, row)
		}

		if e := wtr.Write(line); e != nil {
			return e
		}
	}

	wtr.Flush()

	return wtr.Error()
}

func (f *Files) format(v *Vector, row int) string {
	switch x := v.AsAny().(type) {
	case []float64:
		if math.IsNaN(x[row]) {
			return ""
		}
		if f.FloatFormat != "" {
			return fmt.Sprintf(f.FloatFormat, x[row])
		}
		return strconv.FormatFloat(x[row], 'g', -1, 64)
	case []float32:
		if math.IsNaN(float64(x[row])) {
			return ""
		}
		if f.FloatFormat != "" {
			return fmt.Sprintf(f.FloatFormat, x[row])
		}
		return strconv.FormatFloat(float64(x[row]), 'g', -1, 32)
	case []int:
		return strconv.Itoa(x[row])
	case []string:
		return x[row]
	case []time.Time:
		if x[row].IsZero() {
			return ""
		}
		return x[row].Format(f.DateFormat)
	}

	return ""
}
