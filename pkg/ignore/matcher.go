// Package ignore filters snapshot sources through .vaultignore patterns.
package ignore

import (
	"bufio"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// SentinelFile is the per-source exclusion list read from the source root.
const SentinelFile = ".vaultignore"

type rule struct {
	literal string
	g       glob.Glob
}

// Matcher evaluates exclusion patterns against store-relative paths.
//
// A path is excluded when either
//   - a pattern globs the full relative path, or
//   - any ancestor directory segment is literally equal to a pattern.
//
// The second rule is deliberately a string comparison, not a glob, so that
// a bare pattern like "node_modules" prunes the whole subtree.
type Matcher struct {
	rules []rule
}

// Load reads the sentinel file under sourceRoot. A missing sentinel yields
// an empty matcher.
func Load(fs afero.Fs, sourceRoot string) (*Matcher, error) {
	f, err := fs.Open(sourceRoot + "/" + SentinelFile)
	if err != nil {
		return &Matcher{}, nil
	}
	defer f.Close()

	m := &Matcher{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		pattern := strings.TrimSpace(scanner.Text())
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			// a malformed glob still works as a literal segment rule
			m.rules = append(m.rules, rule{literal: pattern})
			continue
		}
		m.rules = append(m.rules, rule{literal: pattern, g: g})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// New builds a matcher from in-memory patterns.
func New(patterns ...string) *Matcher {
	m := &Matcher{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			m.rules = append(m.rules, rule{literal: pattern})
			continue
		}
		m.rules = append(m.rules, rule{literal: pattern, g: g})
	}
	return m
}

// Len reports the number of loaded patterns.
func (m *Matcher) Len() int {
	return len(m.rules)
}

// Match reports whether the slash-separated relative path is excluded.
func (m *Matcher) Match(rel string) bool {
	if len(m.rules) == 0 {
		return false
	}
	segments := strings.Split(rel, "/")
	ancestors := segments[:len(segments)-1]
	for _, r := range m.rules {
		if r.g != nil && r.g.Match(rel) {
			return true
		}
		for _, seg := range ancestors {
			if seg == r.literal {
				return true
			}
		}
	}
	return false
}
