package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/blockpi/internal/sim"
)

// TraceData is the JSON document written by WriteJSON.
type TraceData struct {
	MassA      float64            `json:"mass_a"`
	MassB      float64            `json:"mass_b"`
	Speed      float64            `json:"speed"`
	Collisions int                `json:"collisions"`
	Ticks      int                `json:"ticks"`
	Settled    bool               `json:"settled"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
	Samples    []sim.Sample       `json:"samples"`
}

func NewTraceData(result *sim.Result, trace *sim.Trace) TraceData {
	return TraceData{
		MassA:      result.Final.A.Mass,
		MassB:      result.Final.B.Mass,
		Speed:      result.Final.Speed,
		Collisions: result.Collisions,
		Ticks:      result.Ticks,
		Settled:    result.Settled,
		Metrics:    result.Metrics,
		Samples:    trace.Samples,
	}
}

func WriteJSON(w io.Writer, data TraceData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

var csvHeader = []string{"tick", "position_a", "position_b", "velocity_a", "velocity_b", "collisions"}

// WriteCSV writes one row per sample with a header line.
func WriteCSV(w io.Writer, samples []sim.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Tick),
			formatFloat(s.PositionA),
			formatFloat(s.PositionB),
			formatFloat(s.VelocityA),
			formatFloat(s.VelocityB),
			strconv.Itoa(s.Collisions),
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
