package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/femtools/weakform/parameter"
)

// MaterialData defines one (regions, harmonic) entry of a material table.
type MaterialData struct {
	Regions  []int   `yaml:"Regions"`
	Harmonic int     `yaml:"Harmonic"`
	Value    float64 `yaml:"Value"`
}

// Parameters obtained from the YAML problem file
type ProblemParameters struct {
	Title                string                    `yaml:"Title"`
	FundamentalFrequency float64                   `yaml:"FundamentalFrequency"`
	MeshNx               int                       `yaml:"MeshNx"`
	MeshNy               int                       `yaml:"MeshNy"`
	SplitX               float64                   `yaml:"SplitX"` // x below which elements belong to region 1, region 2 beyond
	TimeSamples          int                       `yaml:"TimeSamples"`
	Materials            map[string][]MaterialData `yaml:"Materials"`
}

func (pp *ProblemParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, pp)
}

func (pp *ProblemParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", pp.Title)
	fmt.Printf("%8.5f\t\t= FundamentalFrequency\n", pp.FundamentalFrequency)
	fmt.Printf("[%d x %d]\t\t= Mesh\n", pp.MeshNx, pp.MeshNy)
	fmt.Printf("%8.5f\t\t= SplitX\n", pp.SplitX)
	fmt.Printf("[%d]\t\t\t= TimeSamples\n", pp.TimeSamples)
	keys := make([]string, len(pp.Materials))
	i := 0
	for k := range pp.Materials {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Materials[%s] = %v\n", key, pp.Materials[key])
	}
}

// BuildTables turns the material definitions into raw parameter tables,
// one scalar table per material name.
func (pp *ProblemParameters) BuildTables() (tables map[string]*parameter.RawParameter, err error) {
	tables = make(map[string]*parameter.RawParameter, len(pp.Materials))
	for name, entries := range pp.Materials {
		table := parameter.New(1, 1)
		for _, md := range entries {
			harm := md.Harmonic
			if harm == 0 {
				harm = 1 // DC when unspecified
			}
			if err = table.Set(md.Regions, harm, parameter.ConstantScalar(md.Value)); err != nil {
				err = fmt.Errorf("material %s: %v", name, err)
				return
			}
		}
		tables[name] = table
	}
	return
}
