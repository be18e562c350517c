package normalize

import (
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	quotedNickname = regexp.MustCompile(`["“”][^"“”]*["“”]`)
	parenNickname  = regexp.MustCompile(`\([^)]*\)`)

	punctuation = strings.NewReplacer(".", "", ",", " ", "’", "'", "‘", "'", "`", "'")

	nameSuffixes = map[string]bool{
		"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true,
	}
)

// NormalizeName folds a scraped player name into its display form: entities
// decoded, diacritics removed, nicknames and generational suffixes dropped,
// periods removed and whitespace collapsed. "J.J. Redick Jr." becomes "JJ Redick".
func NormalizeName(raw string) string {
	s := html.UnescapeString(raw)
	s = foldMarks(s)
	s = quotedNickname.ReplaceAllString(s, " ")
	s = parenNickname.ReplaceAllString(s, " ")
	s = punctuation.Replace(s)

	fields := strings.Fields(s)
	for len(fields) > 1 && nameSuffixes[strings.ToLower(fields[len(fields)-1])] {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

// nameKey is the case-insensitive lookup key for a raw or canonical name
func nameKey(raw string) string {
	return strings.ToLower(NormalizeName(raw))
}

// foldMarks strips combining marks after canonical decomposition, so "Dončić"
// becomes "Doncic". A fresh chain per call keeps the transformer state private.
func foldMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NameTable maps normalized name keys to canonical player names. It is
// immutable once built and may be shared by any number of resolvers.
type NameTable struct {
	byKey      map[string]string
	canonicals []string
}

// NewNameTable indexes canonical names and alias -> canonical pairs. Every
// canonical name resolves to itself. Two entries whose keys collide but point
// at different canonical names are a table defect and fail construction.
func NewNameTable(canonicals []string, aliases map[string]string) (*NameTable, error) {
	t := &NameTable{byKey: make(map[string]string)}

	add := func(raw, canonical string) error {
		key := nameKey(raw)
		if key == "" {
			return fmt.Errorf("empty name key for %q", raw)
		}
		if existing, ok := t.byKey[key]; ok && existing != canonical {
			return fmt.Errorf("name key %q maps to both %q and %q", key, existing, canonical)
		}
		t.byKey[key] = canonical
		return nil
	}

	seen := make(map[string]bool)
	register := func(canonical string) error {
		if seen[canonical] {
			return nil
		}
		if err := add(canonical, canonical); err != nil {
			return err
		}
		seen[canonical] = true
		t.canonicals = append(t.canonicals, canonical)
		return nil
	}

	for _, c := range canonicals {
		if err := register(c); err != nil {
			return nil, err
		}
	}

	aliasKeys := make([]string, 0, len(aliases))
	for a := range aliases {
		aliasKeys = append(aliasKeys, a)
	}
	sort.Strings(aliasKeys)

	for _, a := range aliasKeys {
		canonical := aliases[a]
		if err := register(canonical); err != nil {
			return nil, err
		}
		if err := add(a, canonical); err != nil {
			return nil, err
		}
	}

	sort.Strings(t.canonicals)
	return t, nil
}

// Lookup returns the canonical name for raw, if the table knows it
func (t *NameTable) Lookup(raw string) (string, bool) {
	if t == nil {
		return "", false
	}
	c, ok := t.byKey[nameKey(raw)]
	return c, ok
}

// Len returns the number of canonical players in the table
func (t *NameTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.canonicals)
}

// Suggest returns up to n canonical names close to raw by edit distance,
// best first. It is a reporting aid for unresolved names, never used to resolve.
func (t *NameTable) Suggest(raw string, n int) []string {
	key := nameKey(raw)
	if t == nil || key == "" || n <= 0 {
		return nil
	}

	type candidate struct {
		name     string
		distance int
	}
	var candidates []candidate

	const threshold = 0.7
	for _, c := range t.canonicals {
		ck := nameKey(c)
		distance := fuzzy.LevenshteinDistance(key, ck)
		maxLen := float64(max(len(key), len(ck)))
		if 1-float64(distance)/maxLen >= threshold {
			candidates = append(candidates, candidate{name: c, distance: distance})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	out := make([]string, 0, min(n, len(candidates)))
	for i := 0; i < len(candidates) && i < n; i++ {
		out = append(out, candidates[i].name)
	}
	return out
}

// NameResolver canonicalizes player names for one scrape session and keeps an
// ordered log of raw names it could not map.
type NameResolver struct {
	table      *NameTable
	unresolved []string
	seen       map[string]struct{}
}

// NewNameResolver returns a resolver over table. A nil table resolves nothing.
func NewNameResolver(table *NameTable) *NameResolver {
	return &NameResolver{
		table: table,
		seen:  make(map[string]struct{}),
	}
}

// Resolve returns the canonical name for raw. Names missing from the table come
// back normalized but unmapped, and raw is appended to the unresolved log.
func (r *NameResolver) Resolve(raw string) string {
	if canonical, ok := r.table.Lookup(raw); ok {
		return canonical
	}
	if _, dup := r.seen[raw]; !dup {
		r.seen[raw] = struct{}{}
		r.unresolved = append(r.unresolved, raw)
	}
	return NormalizeName(raw)
}

// HasUnresolved reports whether any name failed to resolve this session
func (r *NameResolver) HasUnresolved() bool {
	return len(r.unresolved) > 0
}

// Unresolved returns the raw names that failed to resolve, in first-seen order
func (r *NameResolver) Unresolved() []string {
	out := make([]string, len(r.unresolved))
	copy(out, r.unresolved)
	return out
}

// Table exposes the resolver's alias table
func (r *NameResolver) Table() *NameTable {
	return r.table
}
