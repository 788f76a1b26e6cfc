package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProblemParameters(t *testing.T) {
	var (
		yamlData = `
Title: Two Region Conductivity
FundamentalFrequency: 50
MeshNx: 4
MeshNy: 4
SplitX: 0.5
TimeSamples: 32
Materials:
    sigma:
        - Regions: [1]
          Value: 7
        - Regions: [2]
          Harmonic: 2
          Value: 100000
`
	)
	{ // Parse and field values
		var pp ProblemParameters
		err := pp.Parse([]byte(yamlData))
		assert.NoError(t, err)
		assert.Equal(t, "Two Region Conductivity", pp.Title)
		assert.Equal(t, 50., pp.FundamentalFrequency)
		assert.Equal(t, 4, pp.MeshNx)
		assert.Equal(t, 32, pp.TimeSamples)
		assert.Len(t, pp.Materials["sigma"], 2)
	}
	{ // BuildTables produces usable raw parameter tables
		var pp ProblemParameters
		err := pp.Parse([]byte(yamlData))
		assert.NoError(t, err)
		tables, err := pp.BuildTables()
		assert.NoError(t, err)
		sigma := tables["sigma"]
		assert.NotNil(t, sigma)
		// Region 1 holds a DC value, region 2 a fundamental sine
		val, err := sigma.ValueComponent(1, 1, 0, 0, 0.25, 0.5)
		assert.NoError(t, err)
		assert.Equal(t, 7., val)
		val, err = sigma.ValueComponent(2, 2, 0, 0, 0.75, 0.5)
		assert.NoError(t, err)
		assert.Equal(t, 100000., val)
		assert.False(t, sigma.IsDefined(3, 1))
	}
	{ // malformed YAML fails
		var pp ProblemParameters
		err := pp.Parse([]byte("Title: [unclosed"))
		assert.Error(t, err)
	}
}
