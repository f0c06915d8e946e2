// Package harness executes deprecation-enforcement suites.
//
// A suite is a declarative table of cases: each case names a target call
// site and the signal it is expected to raise. The runner installs a strict
// policy (deprecation signals escalate to errors), invokes every target
// exactly once, and classifies each outcome. A case that completes without
// raising is the primary regression this harness exists to catch.
//
// # Manifest Format
//
// Suites are defined in YAML files:
//
//	suite: ecl_deprecations
//	description: "Flagged entry points of the simdata facade"
//	cases:
//	  - name: file_open_by_name
//	    target: file.open_by_name
//	    scratch: true
//	    expect:
//	      category: deprecation
//	      message_pattern: "open by bare keyword file name"
//	  - name: region_active_list
//	    target: region.active_list
//	    expect:
//	      category: deprecation
//
// Targets are resolved against a registry of known call sites; an unknown
// target is a manifest error, not a case failure. Cases with scratch: true
// run inside a fresh isolated directory that is removed on every exit path.
//
// # Outcomes
//
// Each case ends in exactly one terminal state:
//
//   - passed: the expected signal category (and message pattern, when
//     given) was raised
//   - failed_missing_signal: the call completed without raising
//   - failed_unexpected_error: a different signal category or an unrelated
//     error surfaced; expected and actual are both reported
//   - errored: scratch-area setup or teardown failed; infrastructure
//     trouble, not an assertion failure
//
// # Deterministic Reports
//
// Case events are stamped with a monotonic logical clock rather than wall
// time, and reports serialize through canonical JSON, so a suite run is
// byte-identical across repetitions and safe for golden comparison.
package harness
