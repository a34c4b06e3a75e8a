package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title         string  `yaml:"Title"`
	CFL           float64 `yaml:"CFL"`
	FluxType      string  `yaml:"FluxType"`
	InitType      string  `yaml:"InitType"`
	Integrator    string  `yaml:"Integrator"`
	ReconOrder    int     `yaml:"ReconOrder"`
	FinalTime     float64 `yaml:"FinalTime"`
	MaxIterations int     `yaml:"MaxIterations"`
	EOS           string  `yaml:"EOS"`
	Gamma         float64 `yaml:"Gamma"`
	IsoSoundSpeed float64 `yaml:"IsoSoundSpeed"`
	DensityFloor  float64 `yaml:"DensityFloor"`
	PressureFloor float64 `yaml:"PressureFloor"`
	FOFC          bool    `yaml:"FOFC"`
	NScalars      int     `yaml:"NScalars"`
	Nx1           int     `yaml:"Nx1"`
	Nx2           int     `yaml:"Nx2"`
	Nx3           int     `yaml:"Nx3"`
	X1Min         float64 `yaml:"X1Min"`
	X1Max         float64 `yaml:"X1Max"`
	X2Min         float64 `yaml:"X2Min"`
	X2Max         float64 `yaml:"X2Max"`
	X3Min         float64 `yaml:"X3Min"`
	X3Max         float64 `yaml:"X3Max"`
	Metric        string  `yaml:"Metric"` // "flat" or "schwarzschild"
	BHMass        float64 `yaml:"BHMass"`
}

func (ip *InputParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	// Defaults for fields the file may omit
	if ip.CFL == 0 {
		ip.CFL = 0.4
	}
	if ip.Integrator == "" {
		ip.Integrator = "rk2"
	}
	if ip.ReconOrder == 0 {
		ip.ReconOrder = 2
	}
	if ip.EOS == "" {
		ip.EOS = "ideal_gas"
	}
	if ip.Gamma == 0 {
		ip.Gamma = 1.4
	}
	if ip.IsoSoundSpeed == 0 {
		ip.IsoSoundSpeed = 1.
	}
	if ip.Metric == "" {
		ip.Metric = "flat"
	}
	if ip.Nx1 == 0 {
		ip.Nx1 = 100
	}
	if ip.X1Max == 0 && ip.X1Min == 0 {
		ip.X1Max = 1.
	}
	return nil
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%s]\t\t\t= Flux Type\n", ip.FluxType)
	fmt.Printf("[%s]\t= InitType\n", ip.InitType)
	fmt.Printf("[%s]\t\t\t= Integrator\n", ip.Integrator)
	fmt.Printf("[%d]\t\t\t\t= Reconstruction Order\n", ip.ReconOrder)
	fmt.Printf("[%s]\t\t= EOS\n", ip.EOS)
	fmt.Printf("[%v]\t\t\t= First Order Flux Correction\n", ip.FOFC)
	fmt.Printf("[%d,%d,%d]\t\t= Cells\n", ip.Nx1, ip.Nx2, ip.Nx3)
	fmt.Printf("[%s]\t\t\t= Metric\n", ip.Metric)
}
