package riskmodel

// TargetFromSeverity maps an observed infestation severity (1-5) onto the
// 0-100 risk score scale used as the training target.
func TargetFromSeverity(severity int) float64 {
	return clip(float64(severity)*20, 0, 100)
}
