package hevc

import "bytes"

// Fixed capacities for HEVC parameter set ID spaces.
const (
	maxVpsCount = 16
	maxSpsCount = 16
	maxPpsCount = 64
)

// ParamSetTable holds the active VPS/SPS/PPS parameter sets, indexed by
// their ID. Each slot shadows byte-for-byte identical re-submissions as a
// no-op and evicts cascading dependents when a different payload arrives
// at an already-occupied ID: a new SPS at an occupied ID evicts every PPS
// that referenced it, and a new VPS evicts every SPS that referenced it
// (and transitively their PPS).
type ParamSetTable struct {
	vps [maxVpsCount]*vpsEntry
	sps [maxSpsCount]*spsEntry
	pps [maxPpsCount]*ppsEntry
}

type vpsEntry struct {
	raw []byte
	vps VPS
}

type spsEntry struct {
	raw []byte
	sps *SPS
}

type ppsEntry struct {
	raw []byte
	pps *PPS
}

// NewParamSetTable returns an empty parameter set table.
func NewParamSetTable() *ParamSetTable {
	return &ParamSetTable{}
}

// PutVPS installs a decoded VPS under vps.VpsID, using raw (the RBSP bytes
// after emulation-prevention removal, 2-byte NAL header included) to detect byte-equal
// resubmission. A different payload at the same ID evicts every SPS that
// references it (and, transitively, every PPS that references those SPS).
func (t *ParamSetTable) PutVPS(raw []byte, vps VPS) {
	idx := vps.VpsID
	if idx >= maxVpsCount {
		return
	}
	existing := t.vps[idx]
	if existing != nil && bytes.Equal(existing.raw, raw) {
		return
	}
	t.vps[idx] = &vpsEntry{raw: append([]byte(nil), raw...), vps: vps}
	if existing == nil {
		return
	}
	for i := range t.sps {
		if t.sps[i] != nil && t.sps[i].sps.VpsID == idx {
			t.evictSPS(uint8(i))
		}
	}
}

// VPS returns the active VPS for id, if any.
func (t *ParamSetTable) VPS(id uint8) (VPS, bool) {
	if id >= maxVpsCount || t.vps[id] == nil {
		return VPS{}, false
	}
	return t.vps[id].vps, true
}

// PutSPS installs a decoded SPS under sps.SpsID. See PutVPS for the
// shadowing/eviction contract; a different payload at the same ID evicts
// every PPS that references it.
func (t *ParamSetTable) PutSPS(raw []byte, sps *SPS) {
	idx := sps.SpsID
	if idx >= maxSpsCount {
		return
	}
	existing := t.sps[idx]
	if existing != nil && bytes.Equal(existing.raw, raw) {
		return
	}
	t.sps[idx] = &spsEntry{raw: append([]byte(nil), raw...), sps: sps}
	if existing == nil {
		return
	}
	for i := range t.pps {
		if t.pps[i] != nil && t.pps[i].pps.SpsID == idx {
			t.evictPPS(uint8(i))
		}
	}
}

// SPS returns the active SPS for id, if any.
func (t *ParamSetTable) SPS(id uint64) (*SPS, bool) {
	if id >= maxSpsCount || t.sps[id] == nil {
		return nil, false
	}
	return t.sps[id].sps, true
}

// PutPPS installs a decoded PPS under pps.PpsID. Byte-equal resubmission is
// a no-op; anything else replaces the slot outright (PPS has no dependents
// in this table).
func (t *ParamSetTable) PutPPS(raw []byte, pps *PPS) {
	idx := pps.PpsID
	if idx >= maxPpsCount {
		return
	}
	if existing := t.pps[idx]; existing != nil && bytes.Equal(existing.raw, raw) {
		return
	}
	t.pps[idx] = &ppsEntry{raw: append([]byte(nil), raw...), pps: pps}
}

// PPS returns the active PPS for id, if any.
func (t *ParamSetTable) PPS(id uint64) (*PPS, bool) {
	if id >= maxPpsCount || t.pps[id] == nil {
		return nil, false
	}
	return t.pps[id].pps, true
}

func (t *ParamSetTable) evictSPS(id uint8) {
	t.sps[id] = nil
	for i := range t.pps {
		if t.pps[i] != nil && t.pps[i].pps.SpsID == uint64(id) {
			t.evictPPS(uint8(i))
		}
	}
}

func (t *ParamSetTable) evictPPS(id uint8) {
	t.pps[id] = nil
}

