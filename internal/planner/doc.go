// Package planner turns a TranscodingConfig (and, for size-targeted encodes,
// the probed source duration) into the ffmpeg invocations that implement it.
//
//   - types.go: Duration, Resolution, the H264Config and Plan variants
//   - units.go: byte/kilobit/duration arithmetic behind the bitrate budget
//   - filter.go: the -filter:v chain (fps, scale)
//   - args.go: fixed argument groups and the argument builder
//   - planner.go: DerivePlan and ComputeBudget
//   - aspect.go: CheckAspectRatio for explicit WIDTHxHEIGHT scaling
//
// Nothing here performs I/O.
package planner
