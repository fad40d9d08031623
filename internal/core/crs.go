package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

const DefaultCRS = "EPSG:25833"

var crsPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*):([A-Za-z0-9_.-]+)$`)

// CRS is an authority:code coordinate reference system identifier.
type CRS struct {
	Authority string
	Code      string
}

func (c CRS) String() string {
	return c.Authority + ":" + c.Code
}

// ParseCRS validates an identifier such as "EPSG:25833" or "OGC:CRS84".
// The authority is upper-cased.
func ParseCRS(value string) (CRS, error) {
	match := crsPattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return CRS{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid coordinate reference system %q, expected AUTHORITY:CODE", value))
	}
	return CRS{Authority: strings.ToUpper(match[1]), Code: match[2]}, nil
}
