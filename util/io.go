package util

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
)

var ErrMalformedRow = errors.New("malformed row")

//*******************************************
// json
//*******************************************

func WriteJSONToFile[T any](value T, file string) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

func ReadJSONFromFile[T any](file string) (T, error) {
	var value T
	data, err := os.ReadFile(file)
	if err != nil {
		return value, err
	}
	err = json.Unmarshal(data, &value)
	return value, err
}

//*******************************************
// csv
//*******************************************

type CSVOptions struct {
	Delimiter rune
	// If false the file has no header row and `csv` tags are zero-based column indices.
	Header bool
}

func _NewCSVReader(file io.Reader, opts CSVOptions) *csv.Reader {
	reader := csv.NewReader(file)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false
	return reader
}

// Iterates the non-empty fields of every row of a delimited file.
//
// Errors are yielded together with an empty record, iteration stops on the first read error.
func ReadRecordsFromFile(filename string, opts CSVOptions) func(yield func([]string, error) bool) {
	return func(yield func([]string, error) bool) {
		file, err := os.Open(filename)
		if err != nil {
			yield(nil, err)
			return
		}
		defer file.Close()

		reader := _NewCSVReader(file, opts)
		if opts.Header {
			if _, err := reader.Read(); err != nil {
				if err != io.EOF {
					yield(nil, err)
				}
				return
			}
		}
		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			} else if err != nil {
				yield(nil, err)
				return
			}
			fields := make([]string, 0, len(record))
			for _, field := range record {
				if field == "" {
					continue
				}
				fields = append(fields, field)
			}
			if len(fields) == 0 {
				continue
			}
			if !yield(fields, nil) {
				return
			}
		}
	}
}

// Iterates the rows of a delimited file decoded into T using `csv` struct tags.
//
// Tags name header columns, or hold column indices for header-less files.
// Rows failing to parse are yielded as errors wrapping ErrMalformedRow, iteration continues.
func ReadCSVFromFile[T any](filename string, opts CSVOptions) func(yield func(T, error) bool) {
	return func(yield func(T, error) bool) {
		var val T
		file, err := os.Open(filename)
		if err != nil {
			yield(val, err)
			return
		}
		defer file.Close()

		reader := _NewCSVReader(file, opts)
		name_row_mapping := NewDict[string, int](10)
		if opts.Header {
			header, err := reader.Read()
			if err != nil {
				if err != io.EOF {
					yield(val, err)
				}
				return
			}
			for i, name := range header {
				name_row_mapping[name] = i
			}
		}

		typ := reflect.TypeOf(val)
		num_field := typ.NumField()
		fields := NewList[Triple[int, int, reflect.Kind]](num_field)
		for i := 0; i < num_field; i++ {
			field := typ.Field(i)
			tag := field.Tag.Get("csv")
			if tag == "" {
				continue
			}
			var row int
			if opts.Header {
				if !name_row_mapping.ContainsKey(tag) {
					continue
				}
				row = name_row_mapping[tag]
			} else {
				row, err = strconv.Atoi(tag)
				if err != nil {
					yield(val, fmt.Errorf("invalid column index %q on field %s", tag, field.Name))
					return
				}
			}
			switch field.Type.Kind() {
			case reflect.Bool:
				fields.Add(MakeTriple(i, row, reflect.Bool))
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				fields.Add(MakeTriple(i, row, reflect.Int))
			case reflect.Float32, reflect.Float64:
				fields.Add(MakeTriple(i, row, reflect.Float64))
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				fields.Add(MakeTriple(i, row, reflect.Uint))
			case reflect.String:
				fields.Add(MakeTriple(i, row, reflect.String))
			}
		}
		line := 0
		if opts.Header {
			line = 1
		}
		for {
			record, err := reader.Read()
			line += 1
			if err == io.EOF {
				break
			} else if err != nil {
				if !yield(val, err) {
					return
				}
				continue
			}
			t := reflect.New(typ).Elem()
			var row_err error
			for _, field := range fields {
				index := field.A
				row := field.B
				kind := field.C
				if row >= len(record) {
					row_err = fmt.Errorf("line %d: missing column %d: %w", line, row, ErrMalformedRow)
					break
				}
				value := record[row]
				if value == "" {
					continue
				}
				f := t.Field(index)
				switch kind {
				case reflect.Bool:
					num, err := strconv.ParseBool(value)
					row_err = err
					f.SetBool(num)
				case reflect.Int:
					num, err := strconv.ParseInt(value, 10, 64)
					row_err = err
					f.SetInt(num)
				case reflect.Uint:
					num, err := strconv.ParseUint(value, 10, 64)
					row_err = err
					f.SetUint(num)
				case reflect.Float64:
					num, err := strconv.ParseFloat(value, 64)
					row_err = err
					f.SetFloat(num)
				case reflect.String:
					f.SetString(value)
				}
				if row_err != nil {
					row_err = fmt.Errorf("line %d: column %d: %w: %v", line, row, ErrMalformedRow, row_err)
					break
				}
			}
			if row_err != nil {
				if !yield(val, row_err) {
					return
				}
				continue
			}
			value := t.Interface().(T)
			if !yield(value, nil) {
				return
			}
		}
	}
}
