package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		if i == 5 {
			content.WriteString("\n")
		}
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "zero reads nothing",
			maxLines: 0,
			expected: nil,
		},
		{
			name:     "negative reads nothing",
			maxLines: -1,
			expected: nil,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestParseLine(t *testing.T) {
	line := `{"level":"info","ts":"2026-03-01T10:15:30.5Z","message":"identity status check succeeded","url":"http://id/realms/idklol","registration":true,"data":{"a":1}}`

	rec := ParseLine(line)
	if rec.Level != "info" || rec.Message != "identity status check succeeded" {
		t.Fatalf("record = %#v, want info level and message", rec)
	}
	want := time.Date(2026, 3, 1, 10, 15, 30, 500_000_000, time.UTC)
	if !rec.TS.Equal(want) {
		t.Fatalf("TS = %v, want %v", rec.TS, want)
	}
	if rec.Fields["url"] != "http://id/realms/idklol" || rec.Fields["registration"] != "true" {
		t.Fatalf("Fields = %v, want url and registration", rec.Fields)
	}
	if rec.Data != `{"a":1}` {
		t.Fatalf("Data = %q, want raw object", rec.Data)
	}
	if rec.Raw != line {
		t.Fatalf("Raw = %q, want original line", rec.Raw)
	}
}

func TestParseLine_NotJSON(t *testing.T) {
	for _, line := range []string{"plain text", `"just a string"`, `{"level":`} {
		rec := ParseLine(line)
		if rec.Level != "" || rec.Message != "" || rec.Raw != line {
			t.Fatalf("ParseLine(%q) = %#v, want raw only", line, rec)
		}
		if got := Format(rec); got != line {
			t.Fatalf("Format() = %q, want %q", got, line)
		}
	}
}

func TestReadRecordsAndFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "launcher.log")
	content := strings.Join([]string{
		`{"level":"debug","message":"identity status check","url":"http://id"}`,
		`{"level":"warn","message":"registration page opened","data":{"endpoint":"x"}}`,
		`not json`,
	}, "\n") + "\n"
	if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	records, err := ReadRecords(logPath, 2)
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	if got, want := Format(records[0]), `WARN  registration page opened data={"endpoint":"x"}`; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
	if got := Format(records[1]); got != "not json" {
		t.Errorf("Format() = %q, want raw line", got)
	}
}

func TestFormat_SortsFields(t *testing.T) {
	rec := ParseLine(`{"level":"info","message":"m","z":"1","a":2}`)
	if got, want := Format(rec), "INFO  m a=2 z=1"; got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}
