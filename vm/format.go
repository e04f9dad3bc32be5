package vm

import "strconv"

// formatFloat matches object.Float.String(): locale-independent,
// round-trippable decimal (spec §6).
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
