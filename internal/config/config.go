// Package config loads nanogit's optional repository-local TOML
// configuration, grounded on the teacher's modules/zeta/config
// (LoadSystem/LoadGlobal/toml.DecodeFile) but trimmed to the handful of
// knobs this core's components actually expose: none of it is required
// for a walk to run, since every field has a spec-mandated default.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// FileName is the default config file name looked up under a
// repository's root.
const FileName = "nanogit.toml"

// Order names the timestamp a walk orders by. This directly mirrors the
// revwalk.TimeOf choice spec.md §9 leaves open, surfaced here so it can
// be pinned per-repository instead of only per-invocation via the CLI's
// --order flag.
type Order string

const (
	OrderAuthor    Order = "author"
	OrderCommitter Order = "committer"
)

// Config is the decoded shape of nanogit.toml. Every field is optional;
// the zero value of Config is a valid, fully-default configuration.
type Config struct {
	Log   LogConfig   `toml:"log"`
	Store StoreConfig `toml:"store"`
}

// LogConfig configures `nanogit log`'s default behavior absent explicit
// CLI flags.
type LogConfig struct {
	// Order selects revwalk.AuthorTime or revwalk.CommitterTime. Empty
	// means OrderAuthor, spec.md §9's resolution of its open question.
	Order Order `toml:"order"`
}

// StoreConfig configures the object store's optional performance cache.
type StoreConfig struct {
	// CacheBytes is the maximum cost (approximately bytes of decoded
	// envelope data) the store's existence/payload cache may hold. Zero
	// disables the cache entirely; store.Open is called without
	// store.WithCache in that case.
	CacheBytes int64 `toml:"cache_bytes"`
}

// Load reads and decodes the TOML file at path. A missing file is not an
// error: it returns the zero Config, matching the teacher's LoadGlobal
// treating a missing user config as "defaults apply", not a failure.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
