// Package probe inspects the source with a single ffprobe JSON call and
// converts the result into the duration and resolution the planner needs.
//
// Durations are parsed from ffprobe's decimal string rather than a float so
// that the planner's integer arithmetic sees exactly what ffprobe printed.
package probe
