package hevc

// HRDParameters models the hrd_parameters() syntax structure. Its fields are
// consumed for byte-alignment purposes only: this package does not enforce
// the Hypothetical Reference Decoder's timing model (see spec's HRD
// glossary entry), so only the shape needed to stay aligned is exposed.
type HRDParameters struct {
	NalHrdParametersPresent bool
	VclHrdParametersPresent bool
	SubPicHrdParamsPresent  bool
}

// ParseHRDParameters decodes hrd_parameters(). commonInfPresent and
// maxSubLayers come from the caller (VPS or VUI) per the HEVC grammar.
func ParseHRDParameters(r *BitReader, commonInfPresent bool, maxSubLayers uint8) (HRDParameters, error) {
	var hrd HRDParameters
	var err error

	if commonInfPresent {
		if hrd.NalHrdParametersPresent, err = r.ReadBit(); err != nil {
			return hrd, err
		}
		if hrd.VclHrdParametersPresent, err = r.ReadBit(); err != nil {
			return hrd, err
		}

		if hrd.NalHrdParametersPresent || hrd.VclHrdParametersPresent {
			if hrd.SubPicHrdParamsPresent, err = r.ReadBit(); err != nil {
				return hrd, err
			}
			if hrd.SubPicHrdParamsPresent {
				if err = r.SkipBits(8); err != nil { // tick_divisor_minus2
					return hrd, err
				}
				if err = r.SkipBits(5); err != nil { // du_cpb_removal_delay_increment_length_minus1
					return hrd, err
				}
				if err = r.SkipBits(1); err != nil { // sub_pic_cpb_params_in_pic_timing_sei_flag
					return hrd, err
				}
				if err = r.SkipBits(5); err != nil { // dpb_output_delay_du_length_minus1
					return hrd, err
				}
			}

			if err = r.SkipBits(4); err != nil { // bit_rate_scale
				return hrd, err
			}
			if err = r.SkipBits(4); err != nil { // cpb_size_scale
				return hrd, err
			}
			if hrd.SubPicHrdParamsPresent {
				if err = r.SkipBits(4); err != nil { // cpb_size_du_scale
					return hrd, err
				}
			}

			if err = r.SkipBits(5); err != nil { // initial_cpb_removal_delay_length_minus1
				return hrd, err
			}
			if err = r.SkipBits(5); err != nil { // au_cpb_removal_delay_length_minus1
				return hrd, err
			}
			if err = r.SkipBits(5); err != nil { // dpb_output_delay_length_minus1
				return hrd, err
			}
		}
	}

	for i := uint8(0); i < maxSubLayers; i++ {
		lowDelay := false
		nbCpb := uint64(1)

		fixedRate, err := r.ReadBit()
		if err != nil {
			return hrd, err
		}
		if !fixedRate {
			if fixedRate, err = r.ReadBit(); err != nil {
				return hrd, err
			}
		}

		if fixedRate {
			if _, err = r.ReadUE(); err != nil { // elemental_duration_in_tc_minus1
				return hrd, err
			}
		} else {
			if lowDelay, err = r.ReadBit(); err != nil {
				return hrd, err
			}
		}

		if !lowDelay {
			n, err := r.ReadUE()
			if err != nil {
				return hrd, err
			}
			nbCpb = n + 1
		}

		if hrd.NalHrdParametersPresent {
			if err = parseSubLayerHRDParameter(r, nbCpb, hrd.SubPicHrdParamsPresent); err != nil {
				return hrd, err
			}
		}
		if hrd.VclHrdParametersPresent {
			if err = parseSubLayerHRDParameter(r, nbCpb, hrd.SubPicHrdParamsPresent); err != nil {
				return hrd, err
			}
		}
	}

	return hrd, nil
}

func parseSubLayerHRDParameter(r *BitReader, nbCpb uint64, subPicParamsPresent bool) error {
	for i := uint64(0); i < nbCpb; i++ {
		if _, err := r.ReadUE(); err != nil { // bit_rate_value_minus1
			return err
		}
		if _, err := r.ReadUE(); err != nil { // cpb_size_value_minus1
			return err
		}
		if subPicParamsPresent {
			if _, err := r.ReadUE(); err != nil { // cpb_size_du_value_minus1
				return err
			}
			if _, err := r.ReadUE(); err != nil { // bit_rate_du_value_minus1
				return err
			}
		}
		if err := r.SkipBits(1); err != nil { // cbr_flag
			return err
		}
	}
	return nil
}
