// Package ingest classifies an input path into the format its bytes are
// expected to carry, so a caller can choose between the Annex-B pump and
// the Matroska demuxer without inspecting file contents.
package ingest

import "strings"

// Format identifies how an input source should be read.
type Format int

const (
	// FormatAnnexB is a raw Annex-B elementary stream.
	FormatAnnexB Format = iota
	// FormatMatroska is a Matroska (.mkv) container.
	FormatMatroska
	// FormatStdin is the literal "-", meaning read Annex-B from stdin.
	FormatStdin
)

func (f Format) String() string {
	switch f {
	case FormatMatroska:
		return "matroska"
	case FormatStdin:
		return "stdin"
	default:
		return "annexb"
	}
}

// Detect classifies path per the extension rules: ".mkv" is Matroska,
// ".hevc"/".h265"/".265" is raw Annex-B, the single character "-" is
// stdin, and anything else defaults to Annex-B.
func Detect(path string) Format {
	if path == "-" {
		return FormatStdin
	}
	switch {
	case strings.HasSuffix(path, ".mkv"):
		return FormatMatroska
	case strings.HasSuffix(path, ".hevc"),
		strings.HasSuffix(path, ".h265"),
		strings.HasSuffix(path, ".265"):
		return FormatAnnexB
	default:
		return FormatAnnexB
	}
}
