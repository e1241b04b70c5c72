package parser

import (
	"path"
	"sort"
	"strings"

	"rfhistoric/internal/domain"
)

// normalizeTag lower-cases a tag and removes spaces and underscores
func normalizeTag(tag string) string {
	tag = strings.ToLower(tag)
	return strings.NewReplacer(" ", "", "_", "", "\t", "", "\n", "").Replace(tag)
}

// normalizeTags trims, de-duplicates and sorts tags the way Robot Framework does.
// Empty tags and NONE are dropped.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		key := normalizeTag(tag)
		if key == "" || key == "none" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return normalizeTag(out[i]) < normalizeTag(out[j])
	})
	return out
}

// formatTags prints tags as "[a, b]"
func formatTags(tags []string) string {
	return "[" + strings.Join(tags, ", ") + "]"
}

// tagCounter keeps per tag statistics in first-seen order
type tagCounter struct {
	index map[string]int
	list  []domain.Stat
}

func newTagCounter() *tagCounter {
	return &tagCounter{index: make(map[string]int)}
}

func (c *tagCounter) add(tags []string, status string) {
	for _, tag := range tags {
		key := normalizeTag(tag)
		i, ok := c.index[key]
		if !ok {
			i = len(c.list)
			c.index[key] = i
			c.list = append(c.list, domain.Stat{Name: tag})
		}
		c.list[i].Add(status)
	}
}

func (c *tagCounter) stats() []domain.Stat {
	out := make([]domain.Stat, len(c.list))
	copy(out, c.list)
	sort.SliceStable(out, func(i, j int) bool {
		return normalizeTag(out[i].Name) < normalizeTag(out[j].Name)
	})
	return out
}

// tagPattern matches a test's tags. Patterns combine with NOT, OR and AND
// (in that precedence); single patterns support * and ? wildcards.
type tagPattern interface {
	match(tags []string) bool
}

func parseTagPattern(raw string) tagPattern {
	raw = strings.ReplaceAll(raw, "&", "AND")
	if strings.Contains(raw, "NOT") {
		parts := strings.Split(raw, "NOT")
		p := notPattern{}
		if first := strings.TrimSpace(parts[0]); first != "" {
			p.must = parseTagPattern(first)
		}
		for _, part := range parts[1:] {
			p.mustNot = append(p.mustNot, parseTagPattern(part))
		}
		return p
	}
	if strings.Contains(raw, "OR") {
		var p orPattern
		for _, part := range strings.Split(raw, "OR") {
			p = append(p, parseTagPattern(part))
		}
		return p
	}
	if strings.Contains(raw, "AND") {
		var p andPattern
		for _, part := range strings.Split(raw, "AND") {
			p = append(p, parseTagPattern(part))
		}
		return p
	}
	return singlePattern(normalizeTag(raw))
}

type singlePattern string

func (p singlePattern) match(tags []string) bool {
	for _, tag := range tags {
		if ok, err := path.Match(string(p), normalizeTag(tag)); err == nil && ok {
			return true
		}
	}
	return false
}

type andPattern []tagPattern

func (p andPattern) match(tags []string) bool {
	for _, sub := range p {
		if !sub.match(tags) {
			return false
		}
	}
	return true
}

type orPattern []tagPattern

func (p orPattern) match(tags []string) bool {
	for _, sub := range p {
		if sub.match(tags) {
			return true
		}
	}
	return false
}

type notPattern struct {
	must    tagPattern
	mustNot []tagPattern
}

func (p notPattern) match(tags []string) bool {
	if p.must != nil && !p.must.match(tags) {
		return false
	}
	if p.must == nil && len(tags) == 0 {
		return false
	}
	for _, sub := range p.mustNot {
		if sub.match(tags) {
			return false
		}
	}
	return true
}
