package timezones

import (
	"bufio"
	"embed"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/zones.txt
var dataFS embed.FS

const defaultListPath = "data/zones.txt"

var (
	defaultOnce  sync.Once
	defaultZones []string
	defaultErr   error
)

// DefaultZones returns a copy of the embedded zone list, sorted.
func DefaultZones() ([]string, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()
		defaultZones, defaultErr = LoadZones(f)
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]string(nil), defaultZones...), nil
}

// LoadZones reads one zone per line. Blank lines and "#" comments are
// skipped; duplicates are dropped and the result is sorted.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, errors.New("timezones: missing reader")
	}

	scanner := bufio.NewScanner(r)
	seen := make(map[string]struct{})
	zones := make([]string, 0, 64)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		zones = append(zones, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sort.Strings(zones)
	return zones, nil
}

// Label turns a zone name into display text ("America/New_York" becomes
// "America / New York").
func Label(zone string) string {
	return strings.ReplaceAll(strings.ReplaceAll(zone, "_", " "), "/", " / ")
}
