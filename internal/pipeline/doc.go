// Package pipeline orchestrates one transcode: path checks, probing when
// the plan depends on the source, the aspect-ratio guard, plan derivation,
// and either a dry-run listing or sequential execution with a summary.
package pipeline
