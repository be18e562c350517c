package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fortuna/dfscrape/internal/ingest"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// DryRunResult is what scrape --dry-run prints
type DryRunResult struct {
	Source          string         `json:"source"`
	Records         int            `json:"records"`
	Result          *ingest.Result `json:"result"`
	UnresolvedNames []string       `json:"unresolved_names"`
	UnresolvedTeams []string       `json:"unresolved_teams"`
	Failures        []string       `json:"failures"`
}

// WriteReport writes a run report in the specified format
func WriteReport(w io.Writer, r *ingest.Report, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatText:
		fmt.Fprintf(w, "run %s: %s %s, %d records in %s\n",
			r.RunID, r.Source, r.Status, r.Records, r.FinishedAt.Sub(r.StartedAt).Round(1e6))
		if r.Error != "" {
			fmt.Fprintf(w, "error: %s\n", r.Error)
		}
		writeGaps(w, r.UnresolvedNames, r.UnresolvedTeams, r.Failures, r.Suggestions)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteDryRun writes scraped records without storing them
func WriteDryRun(w io.Writer, source string, res *ingest.Result, sess *ingest.Session, format OutputFormat) error {
	out := &DryRunResult{
		Source:          source,
		Records:         res.Len(),
		Result:          res,
		UnresolvedNames: sess.Names.Unresolved(),
		UnresolvedTeams: sess.UnresolvedTeams(),
		Failures:        sess.Failures(),
	}
	switch format {
	case FormatJSON:
		return writeJSON(w, out)
	case FormatText:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		writeRecords(tw, res)
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %d records (dry run, nothing stored)\n", source, out.Records)
		writeGaps(w, out.UnresolvedNames, out.UnresolvedTeams, out.Failures, nil)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeRecords(w io.Writer, res *ingest.Result) {
	if len(res.Lineups) > 0 {
		fmt.Fprintln(w, "NAME\tTEAM\tPOS\tFD\tDK")
		for _, l := range res.Lineups {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", l.Name, l.Team.String, l.Position,
				nullInt(l.FanDuelSalary.Int32, l.FanDuelSalary.Valid), nullInt(l.DraftKingsSalary.Int32, l.DraftKingsSalary.Valid))
		}
	}
	if len(res.Injuries) > 0 {
		fmt.Fprintln(w, "PLAYER\tTEAM\tSTATUS\tINJURY\tSINCE")
		for _, i := range res.Injuries {
			since := "-"
			if i.StartDate.Valid {
				since = i.StartDate.Time.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", i.Player, i.Team.String, i.Status, i.Injury, since)
		}
	}
	if len(res.News) > 0 {
		fmt.Fprintln(w, "PUBLISHED\tPLAYER\tTEAM\tREPORT")
		for _, n := range res.News {
			published := "-"
			if n.PublishedAt.Valid {
				published = n.PublishedAt.Time.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", published, n.Player, n.Team.String, truncate(n.Report.String, 60))
		}
	}
	if len(res.Odds) > 0 {
		fmt.Fprintln(w, "TEAM\tOPP\tSPREAD\tTOTAL\tIMPLIED")
		for _, o := range res.Odds {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", o.Team.String, o.Opponent.String,
				nullFloat(o.Spread.Float64, o.Spread.Valid), nullFloat(o.Total.Float64, o.Total.Valid),
				nullFloat(o.ImpliedPoints.Float64, o.ImpliedPoints.Valid))
		}
	}
}

func writeGaps(w io.Writer, names, teams, failures []string, suggestions map[string][]string) {
	if len(names) > 0 {
		fmt.Fprintf(w, "unresolved names (%d):\n", len(names))
		for _, n := range names {
			if hints := suggestions[n]; len(hints) > 0 {
				fmt.Fprintf(w, "  %s (did you mean %s?)\n", n, strings.Join(hints, ", "))
			} else {
				fmt.Fprintf(w, "  %s\n", n)
			}
		}
	}
	if len(teams) > 0 {
		fmt.Fprintf(w, "unresolved teams: %s\n", strings.Join(teams, ", "))
	}
	if len(failures) > 0 {
		fmt.Fprintf(w, "malformed inputs (%d):\n", len(failures))
		for _, f := range failures {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func nullInt(v int32, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d", v)
}

func nullFloat(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%g", v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
