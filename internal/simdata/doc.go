// Package simdata is a small reservoir-simulation data facade: typed
// keywords, record-framed binary file I/O, rectangular grids, regions over
// grids and mock summary data.
//
// It exists to give the deprecation harness real call sites to exercise.
// A handful of entry points are flagged: they emit through the deprec
// policy facility at the top of the call, and abort with the signal as an
// error when the installed policy escalates their category. The flagged
// paths are noted on their doc comments.
//
// The binary format is deliberately minimal (length-framed records, fixed
// 8-byte keyword headers) and makes no compatibility claims against any
// simulator's native files.
package simdata
