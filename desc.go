package rwasim

// desc.go holds the serializable description of an experiment: topology, demand,
// path parameters and the policies to run.  Descriptions are read from and written
// to YAML, JSON or TOML, selected by file extension.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// PathDesc describes one entry of an explicitly supplied path table
type PathDesc struct {
	Src   int   `json:"src" yaml:"src" toml:"src"`
	Dst   int   `json:"dst" yaml:"dst" toml:"dst"`
	Nodes []int `json:"nodes" yaml:"nodes" toml:"nodes"`
}

// ExpCfg describes an experiment.  When Paths is empty the routes are derived
// from Topology through the catalog and selector; otherwise Paths is the route table
// and Topology is optional.
type ExpCfg struct {
	// Name is an identifier for the experiment
	Name string `json:"name" yaml:"name" toml:"name"`

	// Topology is the N x N link weight matrix, zero meaning no link
	Topology [][]float64 `json:"topology,omitempty" yaml:"topology,omitempty" toml:"topology,omitempty"`

	// Demand is the N x N request matrix
	Demand [][]int `json:"demand" yaml:"demand" toml:"demand"`

	// K is the number of candidate paths enumerated per pair
	K int `json:"k" yaml:"k" toml:"k"`

	// Wavelengths is the number of wavelengths every link offers
	Wavelengths int `json:"wavelengths" yaml:"wavelengths" toml:"wavelengths"`

	// Policies run, in order; empty means all of them
	Policies []Policy `json:"policies,omitempty" yaml:"policies,omitempty" toml:"policies,omitempty"`

	// Paths is an explicitly supplied path table
	Paths []PathDesc `json:"paths,omitempty" yaml:"paths,omitempty" toml:"paths,omitempty"`

	// Spacing, when positive, replays each run on a virtual timeline with this inter-request gap
	Spacing float64 `json:"spacing,omitempty" yaml:"spacing,omitempty" toml:"spacing,omitempty"`

	// TraceFile, when set, receives the trace of every run (.yaml, .yml or .json)
	TraceFile string `json:"tracefile,omitempty" yaml:"tracefile,omitempty" toml:"tracefile,omitempty"`
}

// CreateExpCfg is a constructor for a description that derives routes from a topology
func CreateExpCfg(name string, topology [][]float64, demand [][]int, k, wavelengths int) *ExpCfg {
	cfg := new(ExpCfg)
	cfg.Name = name
	cfg.Topology = topology
	cfg.Demand = demand
	cfg.K = k
	cfg.Wavelengths = wavelengths
	return cfg
}

// AddPath appends an explicit route for the pair of src and dst
func (cfg *ExpCfg) AddPath(src, dst int, nodes []int) {
	cfg.Paths = append(cfg.Paths, PathDesc{Src: src, Dst: dst, Nodes: nodes})
}

// NumNodes returns the node count implied by the demand matrix
func (cfg *ExpCfg) NumNodes() int {
	return len(cfg.Demand)
}

// PathTable builds the route table from Paths.  Each entry's key is canonicalized;
// two entries for one pair are an error.
func (cfg *ExpCfg) PathTable() (PathTable, error) {
	table := make(PathTable, len(cfg.Paths))
	for _, pd := range cfg.Paths {
		pair := MakePair(pd.Src, pd.Dst)
		if _, present := table[pair]; present {
			return nil, invalidf("path table has two routes for %v", pair)
		}
		nodes := make([]int, len(pd.Nodes))
		copy(nodes, pd.Nodes)
		table[pair] = nodes
	}
	if err := table.Validate(cfg.NumNodes()); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate checks the description for everything that would make a run fail
func (cfg *ExpCfg) Validate() error {
	n := cfg.NumNodes()
	if n == 0 {
		return invalidf("experiment %q has an empty demand matrix", cfg.Name)
	}
	if err := Demand(cfg.Demand).Validate(n); err != nil {
		return err
	}
	if cfg.Wavelengths < 1 {
		return invalidf("wavelength count %d, must be at least 1", cfg.Wavelengths)
	}
	if cfg.Spacing < 0 {
		return invalidf("timeline spacing %v is negative", cfg.Spacing)
	}
	if len(cfg.Topology) > 0 && len(cfg.Topology) != n {
		return invalidf("topology has %d nodes but demand covers %d", len(cfg.Topology), n)
	}

	if len(cfg.Paths) > 0 {
		_, err := cfg.PathTable()
		return err
	}
	if len(cfg.Topology) == 0 {
		return invalidf("experiment %q has neither a topology nor a path table", cfg.Name)
	}
	if cfg.K < 1 {
		return invalidf("k=%d, must be at least 1", cfg.K)
	}
	return nil
}

// descFormat maps a file extension to "yaml", "json" or "toml"
func descFormat(filename string) (string, error) {
	switch strings.ToLower(path.Ext(filename)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".json":
		return "json", nil
	case ".toml":
		return "toml", nil
	}
	return "", fmt.Errorf("description %s: extension must be .yaml, .yml, .json or .toml", filename)
}

// WriteToFile stores the description to the file whose name is given.
// Serialization is selected based on the extension of this name.
func (cfg *ExpCfg) WriteToFile(filename string) error {
	format, err := descFormat(filename)
	if err != nil {
		return err
	}

	var data []byte
	var merr error
	switch format {
	case "yaml":
		data, merr = yaml.Marshal(*cfg)
	case "json":
		data, merr = json.MarshalIndent(*cfg, "", "\t")
	case "toml":
		data, merr = encodeTOML(cfg)
	}
	if merr != nil {
		return merr
	}
	return os.WriteFile(filename, data, 0o644)
}

func encodeTOML(cfg *ExpCfg) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadExpCfg deserializes an experiment description.  If dict is empty the file
// whose name is given is read to acquire the bytes; either way the name's extension
// selects the format.
func ReadExpCfg(filename string, dict []byte) (*ExpCfg, error) {
	format, err := descFormat(filename)
	if err != nil {
		return nil, err
	}

	if len(dict) == 0 {
		dict, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
	}

	example := ExpCfg{}
	switch format {
	case "yaml":
		err = yaml.Unmarshal(dict, &example)
	case "json":
		err = json.Unmarshal(dict, &example)
	case "toml":
		_, err = toml.Decode(string(dict), &example)
	}
	if err != nil {
		return nil, err
	}
	return &example, nil
}

// ReferenceExpCfg returns the five node ring-plus-chord experiment with a small
// mixed demand, three candidate paths per pair and five wavelengths per link
func ReferenceExpCfg() *ExpCfg {
	topology := [][]float64{
		{0, 0, 5, 0, 0},
		{0, 0, 0, 3, 7},
		{5, 0, 0, 1, 0},
		{0, 3, 1, 0, 1},
		{0, 7, 0, 1, 0},
	}
	demand := [][]int{
		{0, 0, 2, 0, 0},
		{0, 0, 0, 1, 2},
		{1, 0, 0, 1, 0},
		{0, 1, 1, 0, 1},
		{0, 2, 0, 1, 0},
	}
	return CreateExpCfg("reference", topology, demand, 3, 5)
}
