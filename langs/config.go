package langs

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// overrideFile is the on-disk shape of a user-supplied langs.yaml
// config, grounded on cli/cmd/config.go's sqlcode.yaml loading
// pattern: a map keyed by identifier, unmarshalled with yaml.v3 and
// merged into the builtin table rather than replacing it.
type overrideFile struct {
	Languages map[string]overrideEntry `yaml:"languages"`
}

type overrideEntry struct {
	StringCharacters     []string      `yaml:"string_characters"`
	SingleLineComments   []string      `yaml:"single_line_comments"`
	MultiLineComments    []commentYAML `yaml:"multi_line_comments"`
	BlockOpeners         []string      `yaml:"block_openers"`
	BlockClosers         []string      `yaml:"block_closers"`
	IdentifierStart      string        `yaml:"identifier_start"`
	IdentifierContinue   string        `yaml:"identifier_continue"`
	RegexDelimiters      []string      `yaml:"regex_delimiters"`
	Ranges               bool          `yaml:"ranges"`
	TypeParameterParsing bool          `yaml:"type_parameter_parsing"`
}

type commentYAML struct {
	Begin string `yaml:"begin"`
	End   string `yaml:"end"`
}

// LoadOverrides reads a YAML file at path and returns a table of
// Options keyed by extension, suitable for merging on top of Builtin.
// A missing file is not an error; it returns an empty table, so
// callers can unconditionally call this with a conventional path (e.g.
// "langs.yaml" in the working directory) without a preceding existence
// check.
func LoadOverrides(path string) (map[string]Options, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]Options{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("langs: reading %s: %w", path, err)
	}

	var file overrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("langs: parsing %s: %w", path, err)
	}

	result := make(map[string]Options, len(file.Languages))
	for ext, entry := range file.Languages {
		opts, err := entry.toOptions()
		if err != nil {
			return nil, fmt.Errorf("langs: language %q: %w", ext, err)
		}
		result[ext] = opts
	}
	return result, nil
}

func (e overrideEntry) toOptions() (Options, error) {
	opts := Options{
		StringCharacters:     e.StringCharacters,
		SingleLineComments:   e.SingleLineComments,
		BlockOpeners:         e.BlockOpeners,
		BlockClosers:         e.BlockClosers,
		RegexDelimiters:      e.RegexDelimiters,
		Ranges:               e.Ranges,
		TypeParameterParsing: e.TypeParameterParsing,
	}
	for _, pair := range e.MultiLineComments {
		opts.MultiLineComments = append(opts.MultiLineComments, CommentPair{Begin: pair.Begin, End: pair.End})
	}

	var err error
	if e.IdentifierStart != "" {
		if opts.IdentifierStart, err = regexp.Compile(e.IdentifierStart); err != nil {
			return Options{}, fmt.Errorf("identifier_start: %w", err)
		}
	}
	if e.IdentifierContinue != "" {
		if opts.IdentifierContinue, err = regexp.Compile(e.IdentifierContinue); err != nil {
			return Options{}, fmt.Errorf("identifier_continue: %w", err)
		}
	}
	return opts, nil
}

// WithOverrides merges overrides on top of Builtin, returning a new
// map; Builtin itself is left untouched.
func WithOverrides(overrides map[string]Options) map[string]Options {
	merged := make(map[string]Options, len(Builtin)+len(overrides))
	for ext, opts := range Builtin {
		merged[ext] = opts
	}
	for ext, opts := range overrides {
		merged[ext] = opts
	}
	return merged
}
