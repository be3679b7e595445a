package gait

import (
	"log"
	"sort"
)

// Foot identifies a body side.
type Foot string

const (
	// FootLeft is the left side.
	FootLeft Foot = "left"
	// FootRight is the right side.
	FootRight Foot = "right"
)

// GaitEvent marks a detected foot event at a frame.
type GaitEvent struct {
	Frame int  `json:"frame"`
	Foot  Foot `json:"foot"`
}

// GaitCycle is the interval between two consecutive same-foot strike events.
// DurationFrames always lies within the configured cycle bounds.
type GaitCycle struct {
	ID             int             `json:"cycle_id"`
	Start          int             `json:"start_frame"`
	End            int             `json:"end_frame"`
	DurationFrames int             `json:"duration_frames"`
	DurationSecs   float64         `json:"duration_seconds"`
	Foot           Foot            `json:"foot"`
	Method         DetectionMethod `json:"detection_method"`
}

// strikeWindowTolerance is how close (in position units) a candidate strike
// must be to the extreme value within its local window.
const strikeWindowTolerance = 2.0

// stancePercentile splits a cycle's vertical series into stance and swing:
// frames at or below the 60th percentile are stance.
const stancePercentile = 0.6

// minCyclesForRegularity is the cycle count needed for the step-interval
// regularity statistic.
const minCyclesForRegularity = 3

// AnalyzeCycles detects foot-strike events, segments the sequence into
// per-foot gait cycles, and computes cycle-timing and stance/swing phase
// statistics. Degenerate input yields a report with empty cycles and events;
// an unknown detection method falls back to heel-strike with a warning.
func AnalyzeCycles(pa *PoseArray, cfg AnalysisConfig) *CycleReport {
	report := &CycleReport{
		RunID:    newRunID(),
		Method:   cfg.Method,
		Cycles:   []GaitCycle{},
		Events:   make(map[string][]GaitEvent),
		Features: make(map[string]float64),
	}
	switch cfg.Method {
	case MethodHeelStrike, MethodToeOff, MethodCombined:
	default:
		log.Printf("gait: unknown detection method %q, falling back to heel_strike", cfg.Method)
		report.Method = MethodHeelStrike
	}
	if pa == nil || pa.Frames == 0 {
		return report
	}
	if !cfg.Layout.Valid() {
		log.Printf("gait: unsupported landmark layout %d, skipping cycle analysis", int(cfg.Layout))
		return report
	}

	ankles := map[Foot]int{}
	for foot, name := range map[Foot]string{FootLeft: "left_ankle", FootRight: "right_ankle"} {
		k, ok := cfg.Layout.Index(name)
		if !ok || k >= pa.Landmarks {
			return report
		}
		ankles[foot] = k
	}

	minCF, maxCF := cfg.minCycleFrames(), cfg.maxCycleFrames()

	// Event detection per foot. Combined mode detects both event types but
	// builds cycles from the heel strikes.
	strikeEvents := make(map[Foot][]GaitEvent)
	for _, foot := range []Foot{FootLeft, FootRight} {
		series := pa.YSeries(ankles[foot])
		switch report.Method {
		case MethodToeOff:
			evs := footEvents(series, foot, minCF, true)
			report.Events["toe_off"] = append(report.Events["toe_off"], evs...)
			strikeEvents[foot] = evs
		case MethodCombined:
			heel := footEvents(series, foot, minCF, false)
			report.Events["heel_strike"] = append(report.Events["heel_strike"], heel...)
			report.Events["toe_off"] = append(report.Events["toe_off"], footEvents(series, foot, minCF, true)...)
			strikeEvents[foot] = heel
		default:
			evs := footEvents(series, foot, minCF, false)
			report.Events["heel_strike"] = append(report.Events["heel_strike"], evs...)
			strikeEvents[foot] = evs
		}
	}

	// Cycle construction: consecutive same-foot events within bounds.
	for _, foot := range []Foot{FootLeft, FootRight} {
		evs := strikeEvents[foot]
		for i := 1; i < len(evs); i++ {
			span := evs[i].Frame - evs[i-1].Frame
			if span < minCF || span > maxCF {
				continue
			}
			report.Cycles = append(report.Cycles, GaitCycle{
				Start:          evs[i-1].Frame,
				End:            evs[i].Frame,
				DurationFrames: span,
				DurationSecs:   float64(span) / cfg.FPS,
				Foot:           foot,
				Method:         report.Method,
			})
		}
	}
	sort.Slice(report.Cycles, func(i, j int) bool {
		return report.Cycles[i].Start < report.Cycles[j].Start
	})
	for i := range report.Cycles {
		report.Cycles[i].ID = i
	}

	groups := []struct {
		name string
		fn   func() (map[string]float64, error)
	}{
		{"cycle_timing", func() (map[string]float64, error) {
			return cycleTimingFeatures(report.Cycles, cfg.FPS), nil
		}},
		{"phase", func() (map[string]float64, error) {
			return phaseFeatures(pa, report.Cycles, ankles, cfg.FPS), nil
		}},
	}
	for _, g := range groups {
		feats, err := runFeatureGroup(g.name, g.fn)
		if err != nil {
			if report.Errors == nil {
				report.Errors = make(map[string]string)
			}
			report.Errors[g.name] = err.Error()
			continue
		}
		for k, v := range feats {
			report.Features[k] = v
		}
	}
	return report
}

// footEvents finds candidate strike frames on a foot's vertical position
// series. A heel strike is a strict local minimum that is past minCF frames
// from the start, within strikeWindowTolerance of the minimum value in a
// local window of radius max(5, minCF/4), and at least minCF frames after
// the previously accepted strike. Toe-off (maxima=true) mirrors the same
// rules on local maxima.
func footEvents(series []float64, foot Foot, minCF int, maxima bool) []GaitEvent {
	if len(series) < 3 {
		return nil
	}
	radius := minCF / 4
	if radius < 5 {
		radius = 5
	}

	var events []GaitEvent
	last := -minCF - 1
	for i := 1; i < len(series)-1; i++ {
		if i < minCF || i-last < minCF {
			continue
		}
		v := series[i]
		if maxima {
			if !(v > series[i-1] && v > series[i+1]) {
				continue
			}
		} else {
			if !(v < series[i-1] && v < series[i+1]) {
				continue
			}
		}

		lo, hi := i-radius, i+radius
		if lo < 0 {
			lo = 0
		}
		if hi > len(series)-1 {
			hi = len(series) - 1
		}
		ext := series[lo]
		for j := lo + 1; j <= hi; j++ {
			if maxima {
				if series[j] > ext {
					ext = series[j]
				}
			} else if series[j] < ext {
				ext = series[j]
			}
		}
		if maxima {
			if v < ext-strikeWindowTolerance {
				continue
			}
		} else if v > ext+strikeWindowTolerance {
			continue
		}

		events = append(events, GaitEvent{Frame: i, Foot: foot})
		last = i
	}
	return events
}

// cycleTimingFeatures aggregates cycle duration statistics overall and per
// foot, the cross-foot asymmetry, cadence, and step-interval regularity.
func cycleTimingFeatures(cycles []GaitCycle, fps float64) map[string]float64 {
	out := map[string]float64{"num_cycles": float64(len(cycles))}
	if len(cycles) == 0 {
		return out
	}

	durations := make([]float64, len(cycles))
	byFoot := make(map[Foot][]float64)
	for i, c := range cycles {
		durations[i] = c.DurationSecs
		byFoot[c.Foot] = append(byFoot[c.Foot], c.DurationSecs)
	}

	mean, std, _, _ := seriesStats(durations)
	out["cycle_duration_mean"] = mean
	out["cycle_duration_std"] = std
	if mean > 0 {
		out["cycle_duration_cv"] = std / mean
	}

	footMeans := make(map[Foot]float64)
	for _, foot := range []Foot{FootLeft, FootRight} {
		d := byFoot[foot]
		out[string(foot)+"_num_cycles"] = float64(len(d))
		if len(d) == 0 {
			continue
		}
		m, s, _, _ := seriesStats(d)
		footMeans[foot] = m
		out[string(foot)+"_cycle_duration_mean"] = m
		out[string(foot)+"_cycle_duration_std"] = s
	}
	if lm, lok := footMeans[FootLeft]; lok {
		if rm, rok := footMeans[FootRight]; rok {
			avg := (lm + rm) / 2
			if avg > 0 {
				diff := lm - rm
				if diff < 0 {
					diff = -diff
				}
				out["cycle_duration_asymmetry"] = diff / avg
			}
		}
	}

	// Cycles are sorted by start frame; elapsed time runs to the last
	// cycle's end frame.
	elapsed := float64(cycles[len(cycles)-1].End) / fps
	if elapsed > 0 {
		out["cadence_steps_per_min"] = float64(len(cycles)) / elapsed * 60
	}

	if len(cycles) >= minCyclesForRegularity {
		gaps := make([]float64, len(cycles)-1)
		for i := 1; i < len(cycles); i++ {
			gaps[i-1] = float64(cycles[i].Start - cycles[i-1].Start)
		}
		gm, gs, _, _ := seriesStats(gaps)
		if gm > 0 {
			out["step_regularity"] = gs / gm
		}
	}
	return out
}

// phaseFeatures splits each cycle's vertical foot series at its 60th
// percentile into stance (at or below) and swing frames, then aggregates
// stance/swing durations and their ratio across cycles.
func phaseFeatures(pa *PoseArray, cycles []GaitCycle, ankles map[Foot]int, fps float64) map[string]float64 {
	var stance, swing, ratios []float64
	for _, c := range cycles {
		ankle, ok := ankles[c.Foot]
		if !ok || c.End >= pa.Frames {
			continue
		}
		window := make([]float64, 0, c.End-c.Start+1)
		for f := c.Start; f <= c.End; f++ {
			window = append(window, pa.Y(f, ankle))
		}
		if len(window) == 0 {
			continue
		}
		threshold := percentile(window, stancePercentile)
		var stanceFrames int
		for _, v := range window {
			if v <= threshold {
				stanceFrames++
			}
		}
		swingFrames := len(window) - stanceFrames
		stance = append(stance, float64(stanceFrames)/fps)
		swing = append(swing, float64(swingFrames)/fps)
		if swingFrames > 0 {
			ratios = append(ratios, float64(stanceFrames)/float64(swingFrames))
		}
	}

	out := make(map[string]float64)
	for _, g := range []struct {
		name string
		v    []float64
	}{{"stance_duration", stance}, {"swing_duration", swing}, {"stance_swing_ratio", ratios}} {
		if len(g.v) == 0 {
			continue
		}
		m, s, _, _ := seriesStats(g.v)
		out[g.name+"_mean"] = m
		out[g.name+"_std"] = s
	}
	return out
}
