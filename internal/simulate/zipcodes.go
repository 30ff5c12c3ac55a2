package simulate

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ZipCause records why a ZIP reference load produced what it did, so callers
// can tell "empty because absent" from "empty because malformed".
type ZipCause int

const (
	ZipOK ZipCause = iota
	ZipFileMissing
	ZipColumnMissing
	ZipUnreadable
)

func (c ZipCause) String() string {
	switch c {
	case ZipOK:
		return "ok"
	case ZipFileMissing:
		return "file missing"
	case ZipColumnMissing:
		return "no 'zip' or 'ZIP' column"
	case ZipUnreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// ZipCodes is the deduplicated set of valid 5-digit reference postal codes.
// Codes are sorted so that seeded draws from the set are reproducible.
type ZipCodes struct {
	Codes []string
	Cause ZipCause
}

// Empty reports whether the caller should fall back to synthetic postcodes.
func (z ZipCodes) Empty() bool { return len(z.Codes) == 0 }

// zipColumns are the accepted header names, first present wins.
var zipColumns = []string{"zip", "ZIP"}

// LoadZipCodes reads the reference CSV and returns the unique 5-digit codes.
// A candidate is kept only if, after left-zero-padding to 5 characters, it is
// exactly 5 numeric digits. Every failure path degrades to an empty set with
// a diagnostic; no error is fatal.
func LoadZipCodes(path string) ZipCodes {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("⚠️  ZIP reference file not found at %s\n", path)
			return ZipCodes{Cause: ZipFileMissing}
		}
		fmt.Printf("⚠️  Failed to open ZIP reference file %s: %v\n", path, err)
		return ZipCodes{Cause: ZipUnreadable}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		fmt.Printf("⚠️  Failed to parse ZIP reference file %s: %v\n", path, err)
		return ZipCodes{Cause: ZipUnreadable}
	}
	if len(rows) == 0 {
		fmt.Printf("⚠️  ZIP reference file %s has no header row\n", path)
		return ZipCodes{Cause: ZipColumnMissing}
	}

	col := -1
	for _, name := range zipColumns {
		for i, header := range rows[0] {
			if strings.TrimSpace(header) == name {
				col = i
				break
			}
		}
		if col >= 0 {
			break
		}
	}
	if col < 0 {
		fmt.Printf("⚠️  No 'zip' or 'ZIP' column found in %s\n", path)
		return ZipCodes{Cause: ZipColumnMissing}
	}

	seen := make(map[string]struct{})
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		code := padZip(cell)
		if !isValidZip(code) {
			continue
		}
		seen[code] = struct{}{}
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return ZipCodes{Codes: codes, Cause: ZipOK}
}

func padZip(s string) string {
	for len(s) < 5 {
		s = "0" + s
	}
	return s
}

func isValidZip(s string) bool {
	if len(s) != 5 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
