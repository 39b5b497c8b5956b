package driver

import (
	"encoding/json"
	"fmt"

	"svlower/internal/diag"
	"svlower/internal/observ"
	"svlower/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	Units   int                  `json:"units"`
	Cached  int                  `json:"cached"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic adds an ObsTimings info diagnostic carrying the
// whole report as a JSON note. It ignores the bag limit.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "lower"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms, %d units", payload.Kind, payload.TotalMS, payload.Units)
	if payload.Cached > 0 {
		msg = fmt.Sprintf("%s (%d cached)", msg, payload.Cached)
	}
	if payload.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  source.Span{},
		Notes: []diag.Note{
			{Span: source.Span{}, Msg: string(data)},
		},
	}

	if bag.Cap() <= 0 || bag.Len() < bag.Cap() {
		bag.Add(entry)
		return
	}
	overflow := diag.NewBag(0)
	overflow.Add(entry)
	bag.Merge(overflow)
}
