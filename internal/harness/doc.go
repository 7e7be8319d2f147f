// Package harness provides a conformance testing framework for the query engine.
//
// A scenario is a list of requests, each with optional expectations. Scenarios
// are written in YAML (.yaml, .yml) or CUE (.cue):
//
//	name: buzz-scan
//	description: first five buzz numbers
//	requests:
//	  - number: 1
//	    count: 5
//	    properties: [buzz]
//	    expect:
//	      count: 5
//	      contains: ["7 is buzz, jumping, odd, palindromic, spy, happy"]
//
// Omitting properties makes the request a single-number report; an empty
// list makes it a scan over consecutive numbers.
//
// Run executes every request against a query.Engine and records a
// transcript: one "> request" line per request followed by the rendered
// output, or the error message and its hint. RunWithGolden compares that
// transcript against testdata/golden/<name>.golden.
package harness
