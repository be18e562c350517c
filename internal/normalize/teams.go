package normalize

import (
	"fmt"

	"github.com/fortuna/dfscrape/internal/logger"
)

// Convention is a surface-text dialect a source uses to name a team
type Convention string

const (
	Mascot    Convention = "mascot"     // "Lakers"
	FullName  Convention = "full_name"  // "Los Angeles Lakers"
	ShortName Convention = "short_name" // "LA Lakers"
	Code      Convention = "nba_code"   // "LAL"
)

// Conventions lists every supported naming convention
var Conventions = []Convention{Mascot, FullName, ShortName, Code}

// Team is one franchise in every naming convention
type Team struct {
	Code      string `json:"code"`
	FullName  string `json:"full_name"`
	Mascot    string `json:"mascot"`
	ShortName string `json:"short_name"`
}

// Label returns the team's name in convention c
func (t Team) Label(c Convention) string {
	switch c {
	case Mascot:
		return t.Mascot
	case FullName:
		return t.FullName
	case ShortName:
		return t.ShortName
	case Code:
		return t.Code
	}
	return ""
}

// Teams returns a copy of the franchise table
func Teams() []Team {
	out := make([]Team, len(nbaTeams))
	copy(out, nbaTeams)
	return out
}

// conventionIndex maps each convention's labels onto the franchise table
var conventionIndex = mustIndex(nbaTeams)

func mustIndex(teams []Team) map[Convention]map[string]Team {
	idx, err := indexTeams(teams)
	if err != nil {
		panic(err)
	}
	return idx
}

// indexTeams builds one exact-match index per convention. A label shared by two
// franchises breaks the one-to-one mapping and is reported as an error.
func indexTeams(teams []Team) (map[Convention]map[string]Team, error) {
	idx := make(map[Convention]map[string]Team, len(Conventions))
	for _, c := range Conventions {
		m := make(map[string]Team, len(teams))
		for _, t := range teams {
			label := t.Label(c)
			if label == "" {
				return nil, fmt.Errorf("team %s has no %s label", t.Code, c)
			}
			if prev, dup := m[label]; dup {
				return nil, fmt.Errorf("%s label %q used by both %s and %s", c, label, prev.Code, t.Code)
			}
			m[label] = t
		}
		idx[c] = m
	}
	return idx, nil
}

// IsLabel reports whether label is a known team name in convention c
func IsLabel(c Convention, label string) bool {
	_, ok := conventionIndex[c][label]
	return ok
}

// DetectConvention decides which of two conventions a batch of labels was
// rendered in: more than half of the labels must be a's labels for the batch to
// count as a, otherwise it is b.
func DetectConvention(labels []string, a, b Convention) Convention {
	if len(labels) == 0 {
		return b
	}
	hits := 0
	for _, l := range labels {
		if IsLabel(a, l) {
			hits++
		}
	}
	if float64(hits)/float64(len(labels)) > 0.5 {
		return a
	}
	return b
}

// TeamResolver converts team labels from a source convention to a target
// convention for one scrape session, remembering labels it could not convert.
type TeamResolver struct {
	source Convention
	target Convention
	index  map[string]Team
	misses []string
	seen   map[string]struct{}
	log    *logger.Logger
}

// NewTeamResolver returns a resolver from source labels to target labels
func NewTeamResolver(source, target Convention) (*TeamResolver, error) {
	return newTeamResolver(conventionIndex, source, target)
}

func newTeamResolver(idx map[Convention]map[string]Team, source, target Convention) (*TeamResolver, error) {
	index, ok := idx[source]
	if !ok {
		return nil, fmt.Errorf("unknown source convention %q", source)
	}
	if _, ok := idx[target]; !ok {
		return nil, fmt.Errorf("unknown target convention %q", target)
	}
	return &TeamResolver{
		source: source,
		target: target,
		index:  index,
		seen:   make(map[string]struct{}),
		log:    logger.Named("normalize"),
	}, nil
}

// Resolve returns raw's label in the target convention. A miss returns
// ("", false) and is recorded for the session report.
func (r *TeamResolver) Resolve(raw string) (string, bool) {
	if t, ok := r.index[raw]; ok {
		return t.Label(r.target), true
	}
	r.log.Debug().
		Str("label", raw).
		Str("convention", string(r.source)).
		Msg("team label not in convention")
	if _, dup := r.seen[raw]; !dup {
		r.seen[raw] = struct{}{}
		r.misses = append(r.misses, raw)
	}
	return "", false
}

// Source returns the convention this resolver accepts
func (r *TeamResolver) Source() Convention { return r.source }

// Target returns the convention this resolver produces
func (r *TeamResolver) Target() Convention { return r.target }

// Unresolved returns labels that missed, in first-seen order
func (r *TeamResolver) Unresolved() []string {
	out := make([]string, len(r.misses))
	copy(out, r.misses)
	return out
}
