// Package hevc parses HEVC (H.265) Annex B and ISO/IEC 14496-15 bitstreams.
//
// It splits a byte stream into NAL units, decodes the VPS/SPS/PPS parameter
// sets and slice headers at bit granularity, tracks picture order count
// across a GOP, assembles NAL units into access units, and reorders frames
// from decode order into presentation order at each intra random-access
// point. It does not decode pixels, does not implement CABAC, and does not
// parse slice bodies beyond the slice header.
package hevc
