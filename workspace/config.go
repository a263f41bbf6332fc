package workspace

import "regexp"

// Config is the subset of configuration the ingestion loop consumes (spec
// §6.4): the decoded object, not the on-disk format — decoding "Rhai.toml"
// (or any other format) is a host concern; rhaiconfig is this repo's
// reference YAML loader.
type Config struct {
	Include  []string // glob patterns, unioned and deduped (must be set)
	FileRule string   // optional regex further filtering the glob matches
}

// CompileFileRule compiles FileRule, returning (nil, nil) if it is unset.
func (c Config) CompileFileRule() (*regexp.Regexp, error) {
	if c.FileRule == "" {
		return nil, nil
	}
	return regexp.Compile(c.FileRule)
}
