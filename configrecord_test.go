package hevc

import "testing"

// TestParseHEVCDecoderConfigurationRecordTooShort covers spec property 4:
// a buffer shorter than the fixed 23-byte prefix must fail with
// NotEnoughDataError naming the expected length.
func TestParseHEVCDecoderConfigurationRecordTooShort(t *testing.T) {
	t.Parallel()
	data := make([]byte, configRecordMinLength-1)
	_, err := ParseHEVCDecoderConfigurationRecord(data)
	nedErr, ok := err.(NotEnoughDataError)
	if !ok {
		t.Fatalf("ParseHEVCDecoderConfigurationRecord() error = %T(%v), want NotEnoughDataError", err, err)
	}
	if nedErr.Expected != configRecordMinLength {
		t.Errorf("Expected = %d, want %d", nedErr.Expected, configRecordMinLength)
	}
	if nedErr.Actual != len(data) {
		t.Errorf("Actual = %d, want %d", nedErr.Actual, len(data))
	}
}

// TestParseHEVCDecoderConfigurationRecordUnsupportedVersion covers spec
// property 4's second clause: a configuration_version other than 1 must
// fail with UnsupportedConfigurationVersionError naming the version seen.
func TestParseHEVCDecoderConfigurationRecordUnsupportedVersion(t *testing.T) {
	t.Parallel()
	data := make([]byte, configRecordMinLength)
	data[0] = 2

	_, err := ParseHEVCDecoderConfigurationRecord(data)
	verErr, ok := err.(UnsupportedConfigurationVersionError)
	if !ok {
		t.Fatalf("ParseHEVCDecoderConfigurationRecord() error = %T(%v), want UnsupportedConfigurationVersionError", err, err)
	}
	if verErr.Version != 2 {
		t.Errorf("Version = %d, want 2", verErr.Version)
	}
}
