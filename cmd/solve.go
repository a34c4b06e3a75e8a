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
	"strings"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/gohydro/InputParameters"
	"github.com/notargets/gohydro/eos"
	"github.com/notargets/gohydro/geometry"
	"github.com/notargets/gohydro/hydro"
	"github.com/notargets/gohydro/mesh"
)

type ModelSolve struct {
	ICFile    string
	Graph     bool
	PlotSteps int
	Delay     time.Duration
	Profile   bool
	NProcs    int
}

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Runs the finite volume solver on a structured mesh block",
	Long:  `Runs the finite volume solver on a structured mesh block`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("solve called")
		ms := &ModelSolve{}
		if ms.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		ms.Graph, _ = cmd.Flags().GetBool("graph")
		ps, _ := cmd.Flags().GetInt("plotSteps")
		ms.PlotSteps = ps
		dr, _ := cmd.Flags().GetInt("delay")
		ms.Delay = time.Duration(time.Duration(dr) * time.Millisecond)
		ms.Profile, _ = cmd.Flags().GetBool("profile")
		ms.NProcs, _ = cmd.Flags().GetInt("nprocs")
		ip := processInput(ms)
		RunSolve(ms, ip)
	},
}

func processInput(ms *ModelSolve) (ip *InputParameters.InputParameters) {
	var (
		err error
	)
	if len(ms.ICFile) == 0 {
		err := fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Sod Shock Tube"
CFL: 0.4
FluxType: HLLE
InitType: Sod # Can be "Density_Wave" or "Freestream"
Integrator: RK2
ReconOrder: 2
FinalTime: 0.2
FOFC: true
Nx1: 200
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(ms.ICFile); err != nil {
		panic(err)
	}
	ip = &InputParameters.InputParameters{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- CFL\n\t- FinalTime\n\t- Nx1/Nx2/Nx3")
	solveCmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	solveCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	solveCmd.Flags().IntP("plotSteps", "s", 10, "number of steps before plotting each frame")
	solveCmd.Flags().IntP("nprocs", "p", 0, "number of parallel go routines, 0 uses all cores")
	solveCmd.Flags().Bool("profile", false, "write a CPU profile of the solver run")
}

func RunSolve(ms *ModelSolve, ip *InputParameters.InputParameters) {
	if ms.Profile {
		defer profile.Start().Stop()
	}
	ip.Print()
	mb := mesh.NewMeshBlock(ip.Nx1, ip.Nx2, ip.Nx3, nGhost(ip.ReconOrder),
		ip.X1Min, ip.X1Max, ip.X2Min, ip.X2Max, ip.X3Min, ip.X3Max)
	var e eos.EOS
	switch eos.NewType(ip.EOS) {
	case eos.IDEAL_GAS:
		e = eos.NewIdealGas(ip.Gamma, ip.DensityFloor, ip.PressureFloor)
	case eos.ISOTHERMAL:
		e = eos.NewIsothermal(ip.IsoSoundSpeed, ip.DensityFloor)
	}
	var geom geometry.Provider
	switch strings.ToLower(ip.Metric) {
	case "flat":
		geom = geometry.Flat{}
	case "schwarzschild":
		geom = geometry.NewSchwarzschildKS(mb, ip.BHMass)
	default:
		panic(fmt.Errorf("unable to use metric named %s", ip.Metric))
	}
	h := hydro.NewHydro(mb, e, geom, hydro.NewFluxType(ip.FluxType),
		ip.ReconOrder, ip.NScalars, ip.CFL, ip.Integrator, ip.FOFC, ms.NProcs)
	h.InitializeSolution(hydro.NewInitType(ip.InitType))
	pm := &hydro.PlotMeta{
		Plot:            ms.Graph,
		StepsBeforePlot: ms.PlotSteps,
		Delay:           ms.Delay,
	}
	stopCounters := startPerfCounters()
	if err := h.Solve(ip.FinalTime, ip.MaxIterations, pm); err != nil {
		fmt.Printf("solver stopped: %s\n", err.Error())
		os.Exit(1)
	}
	stopCounters()
}

func nGhost(reconOrder int) int {
	if reconOrder > 1 {
		return 2
	}
	return 1
}
