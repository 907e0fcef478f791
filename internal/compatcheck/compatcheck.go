// Package compatcheck runs a MySQL-dialect query against vitess-sqlparser
// as a differential oracle: if vitess accepts a query that sqlriver
// rejects (or vice versa), that is a signal worth investigating, not
// necessarily a bug in either parser. It is also used to spot-check the
// idempotence property (parse, format, re-parse, re-format, compare)
// against a corpus of MySQL-shaped queries vitess is known to handle.
package compatcheck

import (
	"github.com/blastrain/vitess-sqlparser/sqlparser"
	"github.com/juju/errors"

	"github.com/freeeve/sqlriver"
)

// Result records the outcome of running one query through both parsers.
type Result struct {
	Query         string
	SqlriverErr   error
	VitessErr     error
	Idempotent    bool
	FormattedOnce string
	FormattedTwin string
}

// Agree reports whether both parsers reached the same accept/reject verdict.
func (r Result) Agree() bool {
	return (r.SqlriverErr == nil) == (r.VitessErr == nil)
}

// Check parses query with both sqlriver and vitess-sqlparser under the
// MySQL dialect and, when sqlriver accepts it, verifies that formatting
// is idempotent (formatting the formatted output reproduces it exactly).
func Check(query string) Result {
	res := Result{Query: query}

	opts := sqlriver.DefaultOptions()
	opts.Dialect = sqlriver.MySQL

	stmt, err := sqlriver.Parse(query, opts)
	if err != nil {
		res.SqlriverErr = errors.Annotatef(err, "sqlriver: parsing %q", query)
	}

	if _, verr := sqlparser.Parse(query); verr != nil {
		res.VitessErr = errors.Annotatef(verr, "vitess: parsing %q", query)
	}

	if stmt != nil {
		once := sqlriver.String(stmt)
		stmt2, err2 := sqlriver.Parse(once, opts)
		if err2 == nil {
			twin := sqlriver.String(stmt2)
			res.FormattedOnce = once
			res.FormattedTwin = twin
			res.Idempotent = once == twin
		}
	}

	return res
}

// CheckAll runs Check over a corpus of queries and returns only the results
// where the two parsers disagree on accept/reject or idempotence failed.
func CheckAll(queries []string) []Result {
	var flagged []Result
	for _, q := range queries {
		r := Check(q)
		if !r.Agree() || (r.SqlriverErr == nil && !r.Idempotent) {
			flagged = append(flagged, r)
		}
	}
	return flagged
}
