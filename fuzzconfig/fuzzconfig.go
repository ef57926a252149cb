// Package fuzzconfig loads a fuzzing campaign's configuration from a
// YAML document: corpus/seed directories, packet-sequence size bounds,
// and the relative weight each structural mutator should carry in a
// MutationScheduler's draw. A YAML document first decodes into a
// generic map, then mapstructure decodes named sections into typed
// config structs, mirroring the teacher's VertexSerialization/
// PluginProvider config-loading pattern.
package fuzzconfig

import (
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// MutatorWeights assigns a relative draw weight to each structural
// mutator kind. A weight left unset in the document (or set to 0)
// defaults to 1; to exclude a mutator from a campaign, leave it out of
// the MutationScheduler a harness builds from this config rather than
// trying to zero its weight here.
type MutatorWeights struct {
	Reorder          int `mapstructure:"reorder" yaml:"reorder"`
	Delete           int `mapstructure:"delete" yaml:"delete"`
	Duplicate        int `mapstructure:"duplicate" yaml:"duplicate"`
	Splice           int `mapstructure:"splice" yaml:"splice"`
	CrossoverInsert  int `mapstructure:"crossover_insert" yaml:"crossover_insert"`
	CrossoverReplace int `mapstructure:"crossover_replace" yaml:"crossover_replace"`
	Havoc            int `mapstructure:"havoc" yaml:"havoc"`
}

// CampaignConfig is the top-level campaign configuration.
type CampaignConfig struct {
	// SeedDir is a directory of PCAP/PCAPNG seed captures, loaded via
	// pcapseed.LoadDir.
	SeedDir string `mapstructure:"seed_dir" yaml:"seed_dir"`
	// CorpusDir is where interesting inputs are persisted. Corpus
	// storage itself is out of this module's scope; this is only the
	// configured path a harness wires up.
	CorpusDir string `mapstructure:"corpus_dir" yaml:"corpus_dir"`
	// MinPackets and MaxPackets bound DeleteMutator/SpliceMutator and
	// DuplicateMutator respectively.
	MinPackets int `mapstructure:"min_packets" yaml:"min_packets"`
	MaxPackets int `mapstructure:"max_packets" yaml:"max_packets"`
	// MaxPacketSize bounds CrossoverInsert/Splice growth on a single
	// packet. 0 means unbounded.
	MaxPacketSize int `mapstructure:"max_packet_size" yaml:"max_packet_size"`
	// StatsPath, if set, is where FuzzerStatsWrapper appends its CSV
	// rows.
	StatsPath string `mapstructure:"stats_path" yaml:"stats_path"`

	Mutators MutatorWeights `mapstructure:"mutators" yaml:"mutators"`
}

// defaults applied to fields a document left at their zero value.
func (c *CampaignConfig) applyDefaults() {
	if c.MinPackets == 0 {
		c.MinPackets = 1
	}
	if c.MaxPackets == 0 {
		c.MaxPackets = 1024
	}

	for _, w := range []*int{
		&c.Mutators.Reorder,
		&c.Mutators.Delete,
		&c.Mutators.Duplicate,
		&c.Mutators.Splice,
		&c.Mutators.CrossoverInsert,
		&c.Mutators.CrossoverReplace,
		&c.Mutators.Havoc,
	} {
		if *w == 0 {
			*w = 1
		}
	}
}

// Load reads and decodes a CampaignConfig from a YAML file at path.
func Load(path string) (*CampaignConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(raw)
}

// Parse decodes a CampaignConfig from a YAML document's raw bytes. The
// document first decodes into a generic map so that unrecognized
// top-level keys don't fail the load, then mapstructure maps recognized
// sections onto CampaignConfig's typed fields.
func Parse(raw []byte) (*CampaignConfig, error) {
	var generic map[string]interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	cfg := &CampaignConfig{}
	if err := mapstructure.Decode(generic, cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, nil
}
