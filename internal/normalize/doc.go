// Package normalize resolves the free-text tokens scraped from DFS sources into
// canonical values: player names, team codes, dates and salaries.
//
// Resolvers are built once per scrape session and queried once per record. Name
// and team resolvers remember what they could not resolve so a session can report
// every gap together when it finishes. None of the resolvers are safe for
// concurrent use; give each worker its own instance.
//
// Date resolution assumes scraped content looks backward from the reference
// moment: a month later than the reference month belongs to the previous year.
package normalize
