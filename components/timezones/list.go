package timezones

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/iana_timezones.txt
var dataFS embed.FS

const defaultListPath = "data/iana_timezones.txt"

var (
	defaultOnce  sync.Once
	defaultZones []string
	defaultErr   error
)

// DefaultZones returns a copy of the embedded IANA zone list, sorted.
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

// LoadZones reads one zone per line. Blank lines and `#` comments are
// skipped; the result is sorted and free of duplicates.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("timezones: missing reader")
	}

	seen := map[string]struct{}{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seen[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("timezones: read list: %w", err)
	}

	zones := make([]string, 0, len(seen))
	for zone := range seen {
		zones = append(zones, zone)
	}
	sort.Strings(zones)
	return zones, nil
}

// Filter keeps the zones under any of the given regions ("Europe",
// "America/Argentina"). No regions keeps everything.
func Filter(zones []string, regions ...string) []string {
	prefixes := make([]string, 0, len(regions))
	for _, region := range regions {
		region = strings.Trim(strings.TrimSpace(region), "/")
		if region != "" {
			prefixes = append(prefixes, strings.ToLower(region))
		}
	}
	if len(prefixes) == 0 {
		return append([]string(nil), zones...)
	}

	out := make([]string, 0, len(zones))
	for _, zone := range zones {
		lower := strings.ToLower(zone)
		for _, prefix := range prefixes {
			if lower == prefix || strings.HasPrefix(lower, prefix+"/") {
				out = append(out, zone)
				break
			}
		}
	}
	return out
}
