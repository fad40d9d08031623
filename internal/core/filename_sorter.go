package core

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"layerstack/internal/types"
)

const (
	DefaultPrefix    = "lag"
	DefaultExtension = ".qlr"
)

// NamingScheme describes how an index is read from a definition file name.
type NamingScheme struct {
	Prefix    string
	Extension string
	pattern   *regexp.Regexp
}

// NewNamingScheme builds a scheme. When pattern is not empty it must contain
// one capture group matching the index digits; it is applied to the file
// stem and replaces the prefix rule.
func NewNamingScheme(prefix string, pattern string, extension string) (NamingScheme, error) {
	scheme := NamingScheme{
		Prefix:    prefix,
		Extension: normalizeExtension(extension),
	}
	if strings.TrimSpace(pattern) == "" {
		return scheme, nil
	}
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return NamingScheme{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid index pattern %q", pattern)).
			WithCause(err)
	}
	if compiled.NumSubexp() < 1 {
		return NamingScheme{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("index pattern %q has no capture group", pattern))
	}
	scheme.pattern = compiled
	return scheme, nil
}

func DefaultNamingScheme() NamingScheme {
	return NamingScheme{Prefix: DefaultPrefix, Extension: DefaultExtension}
}

// Matches reports whether the file name carries the scheme's extension.
func (s NamingScheme) Matches(name string) bool {
	if s.Extension == "" {
		return true
	}
	return strings.EqualFold(filepath.Ext(name), s.Extension)
}

// ParseIndex extracts the numeric index from a file name.
func (s NamingScheme) ParseIndex(name string) (int, bool) {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if s.pattern != nil {
		match := s.pattern.FindStringSubmatch(stem)
		if len(match) < 2 {
			return 0, false
		}
		return atoiDigits(match[1])
	}
	if s.Prefix != "" && len(stem) >= len(s.Prefix) && strings.EqualFold(stem[:len(s.Prefix)], s.Prefix) {
		if index, ok := atoiDigits(leadingDigits(stem[len(s.Prefix):])); ok {
			return index, true
		}
	}
	// legacy {NN}_{name} files
	return atoiDigits(leadingDigits(stem))
}

func leadingDigits(value string) string {
	end := 0
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	return value[:end]
}

func atoiDigits(digits string) (int, bool) {
	if digits == "" {
		return 0, false
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return value, true
}

func normalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || ext == "*" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

type FilenameSorter struct {
	scheme    NamingScheme
	direction types.SortDirection
}

func NewFilenameSorter(scheme NamingScheme, direction types.SortDirection) FilenameSorter {
	if direction == "" {
		direction = types.SortDescending
	}
	return FilenameSorter{scheme: scheme, direction: direction}
}

// Sort filters paths by extension and orders them: indexed files first in
// the configured direction, then unindexed files. Equal indices and
// unindexed files keep their input order. The input is not modified.
func (s FilenameSorter) Sort(ctx context.Context, paths []string) []types.LayerDefinitionFile {
	files := make([]types.LayerDefinitionFile, 0, len(paths))
	for _, path := range paths {
		name := filepath.Base(path)
		if !s.scheme.Matches(name) {
			continue
		}
		file := types.LayerDefinitionFile{Path: path, Name: name}
		if index, ok := s.scheme.ParseIndex(name); ok {
			file.Index = &index
		} else {
			log.Ctx(ctx).Warn().Str("file", name).Msg("no layer index in file name, ordering last")
		}
		files = append(files, file)
	}
	sort.SliceStable(files, func(i, j int) bool {
		return s.less(files[i], files[j])
	})
	return files
}

func (s FilenameSorter) less(a, b types.LayerDefinitionFile) bool {
	if a.HasIndex() != b.HasIndex() {
		return a.HasIndex()
	}
	if !a.HasIndex() {
		return false
	}
	if s.direction == types.SortAscending {
		return *a.Index < *b.Index
	}
	return *a.Index > *b.Index
}
