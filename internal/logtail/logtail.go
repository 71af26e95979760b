package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/idklol/launcher/internal/logs"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// ReadRecords tails the file like Read and decodes each line.
func ReadRecords(path string, maxLines int) ([]logs.Record, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	records := make([]logs.Record, 0, len(lines))
	for _, line := range lines {
		records = append(records, ParseLine(line))
	}
	return records, nil
}

// ParseLine decodes one JSON log line. Keys other than ts, level, message
// and data land in Fields.
func ParseLine(line string) logs.Record {
	rec := logs.Record{Raw: line}
	if !gjson.Valid(line) {
		return rec
	}
	parsed := gjson.Parse(line)
	if !parsed.IsObject() {
		return rec
	}
	parsed.ForEach(func(key, value gjson.Result) bool {
		switch key.String() {
		case "ts":
			if ts, err := time.Parse(time.RFC3339Nano, value.String()); err == nil {
				rec.TS = ts
			}
		case "level":
			rec.Level = value.String()
		case "message":
			rec.Message = value.String()
		case "data":
			rec.Data = value.Raw
		default:
			if rec.Fields == nil {
				rec.Fields = make(map[string]string)
			}
			if value.Type == gjson.String {
				rec.Fields[key.String()] = value.String()
			} else {
				rec.Fields[key.String()] = value.Raw
			}
		}
		return true
	})
	return rec
}

// Format renders a record as a single plain-text line:
//
//	15:04:05 INFO  message key=value data={...}
func Format(rec logs.Record) string {
	if rec.Level == "" && rec.Message == "" {
		return rec.Raw
	}
	var b strings.Builder
	if !rec.TS.IsZero() {
		b.WriteString(rec.TS.Local().Format("15:04:05"))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%-5s %s", strings.ToUpper(rec.Level), rec.Message)

	keys := make([]string, 0, len(rec.Fields))
	for k := range rec.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, rec.Fields[k])
	}
	if rec.Data != "" {
		b.WriteString(" data=")
		b.WriteString(rec.Data)
	}
	return b.String()
}
