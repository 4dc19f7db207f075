package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestRead(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "labelprint.log")

	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\r\n")
		all = append(all, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "zero", maxLines: 0, expected: nil},
		{name: "negative", maxLines: -1, expected: nil},
		{name: "partial", maxLines: 5, expected: all[5:]},
		{name: "exactly all", maxLines: 10, expected: all},
		{name: "more than exists", maxLines: 20, expected: all},
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
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v, want nil, nil", got, err)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		line string
		want logrus.Level
		ok   bool
	}{
		{`time="2024-01-01T09:00:00Z" level=info msg="print job accepted"`, logrus.InfoLevel, true},
		{`time="2024-01-01T09:00:00Z" level=warning msg="ignoring proxy"`, logrus.WarnLevel, true},
		{`level=error msg=failed`, logrus.ErrorLevel, true},
		{`level=chatty msg=x`, 0, false},
		{`plain line`, 0, false},
	}
	for _, tt := range tests {
		got, ok := Level(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Level(%q) = %v, %v, want %v, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFilter(t *testing.T) {
	lines := []string{
		"level=debug msg=body",
		"level=info msg=sent",
		"level=warning msg=proxy",
		"continuation",
		"level=error msg=failed",
	}
	got := Filter(lines, logrus.WarnLevel)
	want := []string{"level=warning msg=proxy", "continuation", "level=error msg=failed"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter = %v, want %v", got, want)
	}
}
