package hevc

// ParseScalingListData consumes scaling_list_data() without retaining any of
// the decoded coefficients: the scaling lists affect dequantization, which
// this package does not implement, but the bits must still be traversed so
// that subsequent syntax elements stay aligned.
func ParseScalingListData(r *BitReader) error {
	for sizeID := 0; sizeID < 4; sizeID++ {
		step := 1
		if sizeID == 3 {
			step = 3
		}
		for matrixID := 0; matrixID < 6; matrixID += step {
			predModeFlag, err := r.ReadBit()
			if err != nil {
				return err
			}
			if !predModeFlag {
				if _, err := r.ReadUE(); err != nil { // scaling_list_pred_matrix_id_delta
					return err
				}
				continue
			}

			coefNum := 64
			if sizeID == 0 {
				coefNum = 16
			}
			if err := skipScalingListDeltaCoef(r, sizeID, coefNum); err != nil {
				return err
			}
		}
	}
	return nil
}

func skipScalingListDeltaCoef(r *BitReader, sizeID, coefNum int) error {
	if sizeID > 1 {
		if _, err := r.ReadSE(); err != nil { // scaling_list_dc_coef_minus8
			return err
		}
	}
	for i := 0; i < coefNum; i++ {
		if _, err := r.ReadSE(); err != nil { // scaling_list_delta_coef
			return err
		}
	}
	return nil
}
