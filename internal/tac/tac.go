// Package tac describes beacon type approval codes. Descriptions apply to
// ranges: a code takes the description of the largest table entry not
// above it.
package tac

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tac-descriptions.yaml
var builtin []byte

// ErrDuplicateCode is returned when a table lists the same code twice.
var ErrDuplicateCode = errors.New("duplicate type approval code")

// Entry is the start of a described range of codes.
type Entry struct {
	From        int    `yaml:"from"`
	Description string `yaml:"description"`
}

type document struct {
	Descriptions []Entry `yaml:"descriptions"`
}

// Table is an immutable, sorted set of range entries.
type Table struct {
	entries []Entry
}

// Default returns the built-in table. It is parsed on first use.
var Default = sync.OnceValue(func() *Table {
	t, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("tac: built-in table: %v", err))
	}
	return t
})

// Parse reads a table from YAML.
func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("tac: %w", err)
	}

	seen := make(map[int]string, len(doc.Descriptions))
	for _, e := range doc.Descriptions {
		if prev, ok := seen[e.From]; ok {
			return nil, fmt.Errorf("tac: code %d for %q and %q: %w", e.From, prev, e.Description, ErrDuplicateCode)
		}
		seen[e.From] = e.Description
	}

	entries := append([]Entry(nil), doc.Descriptions...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].From < entries[j].From })
	return &Table{entries: entries}, nil
}

// Load reads a table from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tac: %w", err)
	}
	return Parse(data)
}

// Describe returns the description of the range containing code. A nil
// table describes nothing.
func (t *Table) Describe(code int) (string, bool) {
	if t == nil {
		return "", false
	}
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].From > code })
	if i == 0 {
		return "", false
	}
	return t.entries[i-1].Description, true
}

// Entries returns a copy of the table in code order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	return append([]Entry(nil), t.entries...)
}
