// Package shared provides common utility functions used across multiple
// packages in the layerstack codebase.
package shared

import (
	"regexp"
	"strings"
)

// RedactedPassword is the marker used when datasources are shown to people.
const RedactedPassword = "[PASSWORD_REMOVED]"

var (
	keyValuePasswordPattern = regexp.MustCompile(`(?i)\b(password|pwd)(\s*=\s*)('(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*"|[^'"\s]*)`)
	uriPasswordPattern      = regexp.MustCompile(`(://[^:@/\s]+:)([^@\s]+)(@)`)
)

// RedactDatasource replaces credentials in a layer datasource with
// replacement. Key/value passwords (password=, pwd=) keep their quoting and
// quoted values may contain spaces or escaped quotes; an empty replacement
// yields an explicit empty quoted value.
func RedactDatasource(datasource string, replacement string) string {
	if datasource == "" {
		return datasource
	}
	redacted := keyValuePasswordPattern.ReplaceAllStringFunc(datasource, func(match string) string {
		parts := keyValuePasswordPattern.FindStringSubmatch(match)
		key, sep, value := parts[1], parts[2], parts[3]
		quote := ""
		if len(value) >= 2 && (value[0] == '\'' || value[0] == '"') {
			quote = value[:1]
			value = value[1 : len(value)-1]
		}
		if value == "" || value == replacement {
			return match
		}
		if replacement == "" {
			return key + sep + "''"
		}
		return key + sep + quote + replacement + quote
	})
	if replacement == "" {
		return redacted
	}
	return uriPasswordPattern.ReplaceAllString(redacted, "${1}"+replacement+"${3}")
}

// DisplayDatasource redacts credentials and collapses whitespace for
// single-line output.
func DisplayDatasource(datasource string) string {
	return strings.Join(strings.Fields(RedactDatasource(datasource, RedactedPassword)), " ")
}
