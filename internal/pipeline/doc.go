// Package pipeline provides a framework for executing output steps in sequence.
//
// One run of the tool loads the dataset, computes the report and then hands
// a Run to the pipeline, which writes analytics_report.json, the optional
// markdown report, the shows-by-venue chart and the optional archive entry.
// Each stage is implemented as a Step that receives the Run and records the
// files it produced.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. Optional outputs are added or omitted without touching the core loop
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context between steps
//
// Execution is fail-fast: the first failing step stops the run and its
// error is returned. Outputs written by earlier steps are left in place.
package pipeline
