package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/rubenzuurman/phase-transition-simulation/internal/analysis"
	"github.com/rubenzuurman/phase-transition-simulation/internal/config"
	"github.com/rubenzuurman/phase-transition-simulation/internal/sim"
)

type ExportData struct {
	Name      string           `json:"name"`
	Dt        float64          `json:"dt"`
	Duration  float64          `json:"duration"`
	Seed      int64            `json:"seed"`
	Forcing   string           `json:"forcing"`
	Collision string           `json:"collision"`
	MSD       string           `json:"msd"`
	Steps     int              `json:"steps"`
	Times     []float64        `json:"times"`
	Ensembles []EnsembleExport `json:"ensembles"`
	Errors    []string         `json:"errors,omitempty"`
}

type EnsembleExport struct {
	Name      string             `json:"name"`
	Particles int                `json:"particles"`
	MSD       []float64          `json:"msd"`
	Diffusion []float64          `json:"diffusion"`
	FittedD   *float64           `json:"fitted_diffusion,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewExportData collects the configuration and recorded series of a run.
func NewExportData(cfg *config.Config, result *sim.Result) ExportData {
	data := ExportData{
		Name:      cfg.Name,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Seed:      cfg.Seed,
		Forcing:   cfg.Forcing,
		Collision: cfg.Collision,
		MSD:       cfg.MSD,
		Steps:     result.StepsTaken,
		Times:     result.Times,
		Ensembles: make([]EnsembleExport, len(result.Series)),
	}

	summaries := analysis.Summarize(result)
	for i, s := range result.Series {
		data.Ensembles[i] = EnsembleExport{
			Name:      s.Name,
			Particles: s.Particles,
			MSD:       s.MSD,
			Diffusion: s.Diffusion,
			Metrics:   finiteMetrics(s.Metrics),
		}
		if d := summaries[i].Fitted; !math.IsNaN(d) {
			data.Ensembles[i].FittedD = &d
		}
	}
	for _, err := range result.Errors {
		data.Errors = append(data.Errors, err.Error())
	}
	return data
}

// finiteMetrics drops values JSON cannot represent.
func finiteMetrics(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}

// WriteJSON writes the run as indented JSON.
func WriteJSON(w io.Writer, cfg *config.Config, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(cfg, result))
}

// WriteCSV writes one row per recorded sample: the time followed by the
// MSD and diffusion coefficient of each ensemble.
func WriteCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, 1+2*len(result.Series))
	header = append(header, "time")
	for _, s := range result.Series {
		header = append(header, s.Name+"_msd", s.Name+"_d")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, t := range result.Times {
		row[0] = formatFloat(t)
		for j, s := range result.Series {
			row[1+2*j] = formatFloat(s.MSD[i])
			row[2+2*j] = formatFloat(s.Diffusion[i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
