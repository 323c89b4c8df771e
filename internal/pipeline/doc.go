// Package pipeline provides a framework for executing a noticegen run as
// a sequence of steps.
//
// A run flows through collection (both package-manager collectors),
// validation against the allow-list, optional history persistence, and
// report rendering. Each stage is a Step that receives the shared Audit
// state and can extend it.
//
// The pipeline is fail-fast: the first failing step aborts the run, so no
// report file is ever written after a collector error or a license
// violation. Context cancellation is checked between steps.
package pipeline
