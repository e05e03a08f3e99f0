package tweakbar

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Save writes every recorded variable as "name TYPE value", one per line,
// direct variables first. An empty path writes to the bar's stdout writer.
// Nothing is written if the file cannot be created.
func (b *Bar) Save(path string) error {
	if path == "" {
		return b.SaveTo(b.stdout)
	}

	var buf bytes.Buffer
	if err := b.SaveTo(&buf); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	b.log.Debug("bar saved", "bar", b.name, "path", path,
		"vars", len(b.direct)+len(b.callbacks))
	return nil
}

// SaveTo writes the recorded variables to w. A variable whose value cannot
// be formatted (an enum holding an undefined value) is logged and left out.
func (b *Bar) SaveTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, list := range [][]entry{b.direct, b.callbacks} {
		for _, e := range list {
			s, err := b.format(e)
			if err != nil {
				b.log.Warn("variable not saved", "bar", b.name, "error", err)
				continue
			}
			fmt.Fprintf(bw, "%s %s %s\n", e.name, b.types.Name(e.tag), s)
		}
	}
	return bw.Flush()
}

// LoadReport summarizes a Load. Line errors do not stop a load.
type LoadReport struct {
	Applied int      // values stored
	Missing []string // names not recorded by this bar
	Errors  []error  // *LineError for lines that could not be applied
}

// Load applies a file written by Save. Only a file that cannot be opened or
// read is an error; see LoadReport for per-line results.
func (b *Bar) Load(path string) (LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return LoadReport{}, fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()

	rep, err := b.LoadFrom(f)
	if err != nil {
		return rep, fmt.Errorf("load %s: %w", path, err)
	}
	return rep, nil
}

// commentPrefix starts a settings line that Load skips.
const commentPrefix = "#"

// LoadFrom applies settings lines read from r. Blank lines and lines
// starting with # are ignored. The value is everything after the type.
// Lines of any length are read; only a read error from r stops the load.
func (b *Bar) LoadFrom(r io.Reader) (LoadReport, error) {
	var rep LoadReport
	br := bufio.NewReader(r)
	lineNo := 0

	fail := func(name string, err error) {
		le := &LineError{Line: lineNo, Name: name, Err: err}
		rep.Errors = append(rep.Errors, le)
		b.log.Warn("load line skipped", "bar", b.name, "line", lineNo, "name", name, "error", err)
	}

	apply := func(line string) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			return
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			fail("", fmt.Errorf("%w: want \"name type value\", got %q", ErrParse, line))
			return
		}
		name, typeName := fields[0], fields[1]
		value := strings.Join(fields[2:], " ")

		tag, ok := b.types.TypeFromString(typeName)
		if !ok {
			fail(name, fmt.Errorf("%q: %w", typeName, ErrUnknownType))
			return
		}
		err := b.SetValueFromString(name, tag, value)
		switch {
		case errors.Is(err, ErrUnknownVar):
			rep.Missing = append(rep.Missing, name)
			b.log.Debug("load: not recorded", "bar", b.name, "line", lineNo, "name", name)
		case err != nil:
			fail(name, err)
		default:
			rep.Applied++
		}
	}

	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lineNo++
			apply(line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rep, err
		}
	}

	if err := b.backend.Refresh(); err != nil {
		b.log.Warn("refresh after load", "bar", b.name, "error", err)
	}
	b.log.Debug("bar loaded", "bar", b.name, "applied", rep.Applied,
		"missing", len(rep.Missing), "errors", len(rep.Errors))
	return rep, nil
}
