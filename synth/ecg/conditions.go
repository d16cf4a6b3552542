package ecg

import (
	"github.com/vitalsynth/vitalsynth/synth"
	"github.com/vitalsynth/vitalsynth/synth/kernels"
)

// conditionFunc renders one cardiac condition over the shared time base.
type conditionFunc func(*Synthesizer, Params) (synth.Signal, error)

var conditions = map[Condition]conditionFunc{
	NormalSinus:    (*Synthesizer).normalSinus,
	PVC:            (*Synthesizer).pvc,
	AF:             (*Synthesizer).af,
	Bradycardia:    func(s *Synthesizer, p Params) (synth.Signal, error) { p.HeartRate = 45; return s.normalSinus(p) },
	Tachycardia:    func(s *Synthesizer, p Params) (synth.Signal, error) { p.HeartRate = 120; return s.normalSinus(p) },
	HeartBlock:     (*Synthesizer).heartBlock,
	STElevation:    (*Synthesizer).stElevation,
	STDepression:   (*Synthesizer).stDepression,
	TWaveInversion: (*Synthesizer).tWaveInversion,
	QWave:          (*Synthesizer).qWave,
	LBBB:           (*Synthesizer).bundleBranchBlock,
	RBBB:           (*Synthesizer).bundleBranchBlock,
	WPW:            (*Synthesizer).wpw,
	LAFB:           (*Synthesizer).lafb,
}

// pvc substitutes normal beats with amplified QRS-only complexes at the
// configured per-beat probability.
func (s *Synthesizer) pvc(p Params) (synth.Signal, error) {
	out := s.tb.NewBuffer()
	m := resolveMorphology(p)
	pvcKernel := kernels.QRS(m.qrs.QAmp, m.qrs.RAmp, m.qrs.SAmp, m.qrs.Duration, s.tb.SamplingRate)
	for _, beat := range s.scheduleBeats(p.HeartRate, 0) {
		if s.rng.Float64() < p.PVCFrequency {
			// Ectopic ventricular beat: no P wave, no T wave, amplified QRS.
			synth.PlaceAt(out, pvcKernel, s.tb.SampleIndex(beat), 2.5, p.Edge)
		} else {
			s.addBeat(out, beat, m, true, p.Edge)
		}
	}
	return out, nil
}

// af abandons fixed-rate scheduling: successive RR intervals are drawn
// uniformly from [60/AFRateMax, 60/AFRateMin] and P waves are omitted.
func (s *Synthesizer) af(p Params) (synth.Signal, error) {
	out := s.tb.NewBuffer()
	m := resolveMorphology(p)
	qrs := kernels.QRS(m.qrs.QAmp, m.qrs.RAmp, m.qrs.SAmp, m.qrs.Duration, s.tb.SamplingRate)
	tWave := kernels.GaussianBump(m.t.Amplitude, m.t.Duration, s.tb.SamplingRate)

	rrMin := 60 / p.AFRateMax
	rrMax := 60 / p.AFRateMin
	for t := 0.0; t < s.tb.Duration; t += rrMin + s.rng.Float64()*(rrMax-rrMin) {
		synth.PlaceAt(out, qrs, s.tb.SampleIndex(t), 1, p.Edge)
		synth.PlaceAt(out, tWave, s.tb.SampleIndex(t+qtOffset), 1, p.Edge)
	}
	return out, nil
}

// heartBlock renders AV conduction block. P waves always conduct; QRS
// behavior depends on the degree: 1 = prolonged PR, 2 = alternating dropped
// beats, 3 = an independent slow ventricular escape rhythm.
func (s *Synthesizer) heartBlock(p Params) (synth.Signal, error) {
	out := s.tb.NewBuffer()
	m := resolveMorphology(p)
	pWave := kernels.GaussianBump(m.p.Amplitude, m.p.Duration, s.tb.SamplingRate)

	atrial := s.scheduleBeats(p.HeartRate, 0)
	for _, beat := range atrial {
		synth.PlaceAt(out, pWave, s.tb.SampleIndex(beat-prInterval), 1, p.Edge)
	}

	switch p.BlockDegree {
	case 1:
		// Fixed prolonged PR interval.
		for _, beat := range atrial {
			s.addBeat(out, beat+0.3-prInterval, m, false, p.Edge)
		}
	case 2:
		// Alternate conducted and dropped beats.
		for i, beat := range atrial {
			if i%2 == 0 {
				s.addBeat(out, beat+0.2-prInterval, m, false, p.Edge)
			}
		}
	default:
		// Complete dissociation: ventricular escape rhythm at ~40 BPM,
		// decoupled from the atrial schedule.
		const escapeRate = 40.0
		offset := 0.2 + 0.2*s.rng.Float64()
		for _, beat := range s.scheduleBeats(escapeRate, 0) {
			s.addBeat(out, beat+offset, m, false, p.Edge)
		}
	}
	return out, nil
}

// stShift renders sinus rhythm and offsets a fixed window after each QRS by
// the given displacement. One schedule drives both the beats and the windows,
// so the shift tracks HRV jitter beat for beat.
func (s *Synthesizer) stShift(p Params, displacement float64) (synth.Signal, error) {
	beats := s.scheduleBeats(p.HeartRate, p.HRVStd)
	out := s.renderSinus(beats, resolveMorphology(p), p.Edge)
	const stStart, stDuration = 0.1, 0.1
	window := s.tb.SampleCount(stDuration)
	for _, beat := range beats {
		start := s.tb.SampleIndex(beat + stStart)
		if start < 0 || start+window >= s.tb.NSamples {
			continue
		}
		for i := start; i < start+window; i++ {
			out[i] += displacement
		}
	}
	return out, nil
}

func (s *Synthesizer) stElevation(p Params) (synth.Signal, error) {
	return s.stShift(p, p.Severity*0.3)
}

func (s *Synthesizer) stDepression(p Params) (synth.Signal, error) {
	return s.stShift(p, -p.Severity*0.2)
}

// tWaveInversion replaces each T wave with a severity-scaled inverted copy,
// reusing the beat schedule so the replacement lands on the rendered T.
func (s *Synthesizer) tWaveInversion(p Params) (synth.Signal, error) {
	beats := s.scheduleBeats(p.HeartRate, p.HRVStd)
	m := resolveMorphology(p)
	out := s.renderSinus(beats, m, p.Edge)
	tWave := kernels.GaussianBump(m.t.Amplitude, m.t.Duration, s.tb.SamplingRate)
	for _, beat := range beats {
		start := s.tb.SampleIndex(beat + qtOffset)
		synth.Place(out, tWave, start, -p.Severity, p.Edge, synth.PlaceReplace)
	}
	return out, nil
}

// qWave overwrites a 40 ms window before each QRS with a deep rectangular
// pathological Q wave.
func (s *Synthesizer) qWave(p Params) (synth.Signal, error) {
	beats := s.scheduleBeats(p.HeartRate, p.HRVStd)
	out := s.renderSinus(beats, resolveMorphology(p), p.Edge)
	const qDuration = 0.04
	n := s.tb.SampleCount(qDuration)
	pulse := make(synth.Signal, n)
	for i := range pulse {
		pulse[i] = 1
	}
	for _, beat := range beats {
		start := s.tb.SampleIndex(beat) - n
		synth.Place(out, pulse, start, -p.Severity*0.4, p.Edge, synth.PlaceReplace)
	}
	return out, nil
}

// bundleBranchBlock widens the QRS and reshapes its lobes: LBBB approximates
// a broad notched R, RBBB an RSR' pattern. P waves and T waves stay normal.
func (s *Synthesizer) bundleBranchBlock(p Params) (synth.Signal, error) {
	out := s.tb.NewBuffer()
	m := resolveMorphology(p)
	pWave := kernels.GaussianBump(m.p.Amplitude, m.p.Duration, s.tb.SamplingRate)
	tWave := kernels.GaussianBump(m.t.Amplitude, m.t.Duration, s.tb.SamplingRate)

	qrsDuration := 0.12 + 0.08*p.Severity
	var qrs synth.Signal
	if p.Condition == LBBB {
		qrs = kernels.QRS(0.8, 1.0, 0.8, qrsDuration, s.tb.SamplingRate)
	} else {
		qrs = kernels.QRS(-0.5, 1.0, 0.7, qrsDuration, s.tb.SamplingRate)
	}

	for _, beat := range s.scheduleBeats(p.HeartRate, 0) {
		synth.PlaceAt(out, pWave, s.tb.SampleIndex(beat-prInterval), 1, p.Edge)
		qrsStart := s.tb.SampleIndex(beat)
		synth.PlaceAt(out, qrs, qrsStart, 1, p.Edge)
		synth.PlaceAt(out, tWave, qrsStart+len(qrs)+s.tb.SampleCount(0.05), 1, p.Edge)
	}
	return out, nil
}

// wpw shortens the PR interval and inserts a slurred delta-wave upstroke
// immediately before a normal QRS.
func (s *Synthesizer) wpw(p Params) (synth.Signal, error) {
	out := s.tb.NewBuffer()
	m := resolveMorphology(p)
	pWave := kernels.GaussianBump(m.p.Amplitude, m.p.Duration, s.tb.SamplingRate)
	qrs := kernels.QRS(m.qrs.QAmp, m.qrs.RAmp, m.qrs.SAmp, m.qrs.Duration, s.tb.SamplingRate)
	tWave := kernels.GaussianBump(m.t.Amplitude, m.t.Duration, s.tb.SamplingRate)

	const shortPR = 0.08
	deltaN := s.tb.SampleCount(0.04 * p.Severity)
	delta := make(synth.Signal, deltaN)
	for i := range delta {
		delta[i] = p.Severity * 0.3 * float64(i) / float64(max(deltaN-1, 1))
	}

	for _, beat := range s.scheduleBeats(p.HeartRate, 0) {
		synth.PlaceAt(out, pWave, s.tb.SampleIndex(beat), 1, p.Edge)
		deltaStart := s.tb.SampleIndex(beat + shortPR)
		synth.PlaceAt(out, delta, deltaStart, 1, p.Edge)
		qrsStart := deltaStart + len(delta)
		synth.PlaceAt(out, qrs, qrsStart, 1, p.Edge)
		synth.PlaceAt(out, tWave, qrsStart+len(qrs)+s.tb.SampleCount(0.05), 1, p.Edge)
	}
	return out, nil
}

// lafb approximates left-axis deviation: narrow Q, tall R, small S, with a
// normal PR interval.
func (s *Synthesizer) lafb(p Params) (synth.Signal, error) {
	out := s.tb.NewBuffer()
	m := resolveMorphology(p)
	pWave := kernels.GaussianBump(m.p.Amplitude, m.p.Duration, s.tb.SamplingRate)
	tWave := kernels.GaussianBump(m.t.Amplitude, m.t.Duration, s.tb.SamplingRate)

	qrsDuration := 0.08 + 0.04*p.Severity
	qrs := kernels.QRS(-0.2, 1.5, -0.3, qrsDuration, s.tb.SamplingRate)

	for _, beat := range s.scheduleBeats(p.HeartRate, 0) {
		synth.PlaceAt(out, pWave, s.tb.SampleIndex(beat-prInterval), 1, p.Edge)
		qrsStart := s.tb.SampleIndex(beat)
		synth.PlaceAt(out, qrs, qrsStart, 1, p.Edge)
		synth.PlaceAt(out, tWave, qrsStart+len(qrs)+s.tb.SampleCount(0.05), 1, p.Edge)
	}
	return out, nil
}
