package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Read returns at most maxLines from the end of the log at path. A missing
// log is not an error; it yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 || path == "" {
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
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = strings.TrimRight(scanner.Text(), "\r")
		next = (next + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if count < maxLines {
		return append([]string(nil), ring[:count]...), nil
	}
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		lines = append(lines, ring[(next+i)%maxLines])
	}
	return lines, nil
}

// Level extracts the level=... field written by the logrus text formatter.
func Level(line string) (logrus.Level, bool) {
	for _, field := range strings.Fields(line) {
		value, ok := strings.CutPrefix(field, "level=")
		if !ok {
			continue
		}
		lvl, err := logrus.ParseLevel(strings.Trim(value, `"`))
		if err != nil {
			return 0, false
		}
		return lvl, true
	}
	return 0, false
}

// Filter keeps lines at least as severe as min. Lines without a level,
// such as wrapped response bodies, are kept.
func Filter(lines []string, min logrus.Level) []string {
	var out []string
	for _, line := range lines {
		if lvl, ok := Level(line); ok && lvl > min {
			continue
		}
		out = append(out, line)
	}
	return out
}
