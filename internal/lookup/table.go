package lookup

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Table is the CSV-backed lookup table shipped with the service. It carries
// two things: the set of item ids excluded from the inventory check, and the
// code-to-category overrides applied during item enrichment.
//
// Expected columns: item_id, code, category, excluded. Header row required.
type Table struct {
	excluded   map[int64]struct{}
	categories map[string]string
}

// Load reads a lookup table from path. A missing file yields an empty table
// with a warning; the service runs fine without overrides or exclusions.
func Load(path string, logger zerolog.Logger) (*Table, error) {
	if path == "" {
		return empty(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", path).Msg("lookup table not found, continuing with empty table")
			return empty(), nil
		}
		return nil, fmt.Errorf("open lookup table: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse lookup table %s: %w", path, err)
	}
	logger.Info().Str("path", path).Int("excluded_items", len(t.excluded)).Int("category_overrides", len(t.categories)).Msg("lookup table loaded")
	return t, nil
}

// Parse reads lookup rows from r.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := columnIndex(header)

	t := empty()
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if idx, ok := col["item_id"]; ok && idx < len(record) && record[idx] != "" {
			id, err := strconv.ParseInt(record[idx], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad item_id %q", line, record[idx])
			}
			if excludedIdx, ok := col["excluded"]; ok && excludedIdx < len(record) {
				if v, _ := strconv.ParseBool(record[excludedIdx]); v {
					t.excluded[id] = struct{}{}
				}
			}
		}

		codeIdx, hasCode := col["code"]
		catIdx, hasCat := col["category"]
		if hasCode && hasCat && codeIdx < len(record) && catIdx < len(record) {
			code, category := record[codeIdx], record[catIdx]
			if code != "" && category != "" {
				t.categories[code] = category
			}
		}
	}
	return t, nil
}

// ExcludedItemIDs returns the item ids the inventory check skips.
func (t *Table) ExcludedItemIDs() map[int64]struct{} {
	return t.excluded
}

// Category returns the category override for an item code.
func (t *Table) Category(code string) (string, bool) {
	c, ok := t.categories[code]
	return c, ok
}

func empty() *Table {
	return &Table{
		excluded:   make(map[int64]struct{}),
		categories: make(map[string]string),
	}
}

func columnIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return col
}
