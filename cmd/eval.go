/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/profile"

	"github.com/spf13/cobra"

	"github.com/femtools/weakform/InputParameters"
	"github.com/femtools/weakform/assembly"
	"github.com/femtools/weakform/expression"
	"github.com/femtools/weakform/harmonic"
	"github.com/femtools/weakform/mesh"
)

type ModelEval struct {
	ProblemFile  string
	Material     string
	Workers      int
	Profile      bool
	PerfCounters bool
}

// EvalCmd represents the eval command
var EvalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a material parameter over a generated mesh and assemble its weak form terms",
	Long: `Evaluate a material parameter over a generated mesh and assemble its weak form terms.
Reads a YAML problem description, builds a structured unit square mesh split
into two regions, interpolates the named material at quadrature points and
assembles mass and load terms per harmonic.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		me := &ModelEval{}
		if me.ProblemFile, err = cmd.Flags().GetString("problemFile"); err != nil {
			panic(err)
		}
		me.Material, _ = cmd.Flags().GetString("material")
		me.Workers, _ = cmd.Flags().GetInt("workers")
		me.Profile, _ = cmd.Flags().GetBool("profile")
		me.PerfCounters, _ = cmd.Flags().GetBool("perfCounters")
		pp := processProblem(me)
		RunEval(me, pp)
	},
}

func processProblem(me *ModelEval) (pp *InputParameters.ProblemParameters) {
	var (
		err error
	)
	if len(me.ProblemFile) == 0 {
		err = fmt.Errorf("must supply a problem file (-I, --problemFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Two Region Conductivity"
FundamentalFrequency: 50
MeshNx: 8
MeshNy: 8
SplitX: 0.5
TimeSamples: 32
Materials:
    sigma:
        - Regions: [1]
          Value: 7
        - Regions: [2]
          Harmonic: 2
          Value: 100000
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(me.ProblemFile); err != nil {
		panic(err)
	}
	pp = &InputParameters.ProblemParameters{}
	if err = pp.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(EvalCmd)
	EvalCmd.Flags().StringP("problemFile", "I", "", "YAML file describing the mesh, materials and harmonics")
	EvalCmd.Flags().StringP("material", "m", "sigma", "name of the material to evaluate")
	EvalCmd.Flags().IntP("workers", "w", 1, "number of parallel interpolation workers")
	EvalCmd.Flags().BoolP("profile", "p", false, "generate a runtime profile of the evaluation")
	EvalCmd.Flags().Bool("perfCounters", false, "count hardware instructions during interpolation (linux only)")
}

func RunEval(me *ModelEval, pp *InputParameters.ProblemParameters) {
	var (
		err error
	)
	if me.Profile {
		defer profile.Start().Stop()
	}
	pp.Print()
	if pp.FundamentalFrequency > 0 {
		expression.SetFundamentalFrequency(pp.FundamentalFrequency)
	}

	msh, err := mesh.NewUnitSquare(pp.MeshNx, pp.MeshNy, func(cx, cy float64) int {
		if cx < pp.SplitX {
			return 1
		}
		return 2
	})
	if err != nil {
		panic(err)
	}
	eb := msh.NewBatch(msh.Regions()...)
	fmt.Printf("[%d]\t\t\t= Elements\n", eb.Count())

	tables, err := pp.BuildTables()
	if err != nil {
		panic(err)
	}
	table, ok := tables[me.Material]
	if !ok {
		fmt.Printf("error: material %q not found in problem file\n", me.Material)
		os.Exit(1)
	}
	coef, err := expression.NewParameter(table, 0, 0)
	if err != nil {
		panic(err)
	}
	// Result reuse is unsafe under concurrent interpolation
	coef.ReuseIt(me.Workers < 2)

	simplified := coef.Simplify(eb.Regions())
	fmt.Printf("expression\t\t= %s\n", simplified)

	refCoords, _ := assembly.TriQuadrature()
	var harms expression.HarmMatrices
	interpolate := func() (err error) {
		harms, err = expression.InterpolateParallel(simplified, eb, refCoords, nil, me.Workers)
		return
	}
	if me.PerfCounters {
		err = measureInstructions(interpolate)
	} else {
		err = interpolate()
	}
	if err != nil {
		panic(err)
	}
	for _, h := range harmonic.Sorted(harms) {
		min, max := harms[h].Min(), harms[h].Max()
		fmt.Printf("%s\t\t: min %8.5f, max %8.5f\n", harmonic.Name(h), min, max)
	}

	if pp.TimeSamples > 0 {
		samples, err := simplified.MultiharmonicInterpolate(pp.TimeSamples, eb, refCoords, nil)
		if err != nil {
			panic(err)
		}
		var lo, hi float64
		for i, s := range samples {
			if i == 0 || s.Min() < lo {
				lo = s.Min()
			}
			if i == 0 || s.Max() > hi {
				hi = s.Max()
			}
		}
		fmt.Printf("time range\t\t: min %8.5f, max %8.5f over %d samples\n", lo, hi, len(samples))
	}

	u := expression.NewField("u", msh)
	mass, err := assembly.AssembleBilinear(assembly.BilinearTerm{
		Coef:  simplified,
		Trial: expression.NewDof(u),
		Test:  expression.NewTf(u),
		Kind:  assembly.DofTf,
	}, eb, nil)
	if err != nil {
		panic(err)
	}
	for _, h := range harmonic.Sorted(mass) {
		csr := mass[h].ToCSR()
		fmt.Printf("mass %s\t\t: %d nonzeros\n", harmonic.Name(h), csr.NNZ())
	}

	load, err := assembly.AssembleLinear(assembly.LinearTerm{
		Coef: simplified,
		Test: expression.NewTf(u),
	}, eb, nil)
	if err != nil {
		panic(err)
	}
	for _, h := range harmonic.Sorted(load) {
		var total float64
		for i := 0; i < load[h].Len(); i++ {
			total += load[h].AtVec(i)
		}
		fmt.Printf("load %s\t\t: total %8.5f\n", harmonic.Name(h), total)
	}
}
