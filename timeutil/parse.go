// Package timeutil holds the time layout used for query parameters.
package timeutil

import "time"

type (
	ParserFunc    func(value string) (time.Time, error)
	FormatterFunc func(value time.Time) string
)

var (
	DefaultLayout = time.RFC3339

	// DefaultParserFunc parses values written by DefaultFormatterFunc.
	DefaultParserFunc ParserFunc = func(value string) (time.Time, error) {
		return time.Parse(DefaultLayout, value)
	}
	// DefaultFormatterFunc formats a time in UTC so that query strings do not
	// depend on the local zone.
	DefaultFormatterFunc FormatterFunc = func(value time.Time) string {
		return value.UTC().Format(DefaultLayout)
	}
)
