// Package ffmpeg runs planned ffmpeg invocations.
//
// An Executor runs one invocation as a blocking child process, streaming
// ffmpeg's progress to the terminal while keeping the tail of stderr for
// error reporting. RunPlan runs the invocations of a plan strictly in order,
// stopping at the first failure; the second pass of a two-pass encode reads
// the statistics the first pass leaves in the working directory.
package ffmpeg
