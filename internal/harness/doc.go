// Package harness runs table comparison scenarios described in YAML.
//
// A scenario pairs an expected table with a list of actual items and states
// what the comparison should conclude:
//
//	name: one_missing_one_extra
//	description: "pear is missing and plum is unexpected"
//	locale: en-US          # optional, invariant when omitted
//	style: aligned         # optional: aligned, raw or box
//	table:
//	  headers: [Name, Qty]
//	  rows:
//	    - [apple, 3]
//	    - [pear, 1]
//	actual:
//	  - {name: apple, qty: 3}
//	  - {name: plum, qty: 7}
//	expect:
//	  pass: false
//	assertions:
//	  - type: missing_rows
//	    rows: [1]
//	  - type: extra_count
//	    count: 1
//	  - type: report_contains
//	    text: "+ | plum  | 7   |"
//
// expect.pass is the comparison verdict: true when every row matched an
// item and no item was left over. expect.report, when present, must equal
// the rendered report, ignoring trailing newlines. Assertions add finer
// checks.
//
// # Assertion Types
//
//   - missing_rows: the 0-based indices of unmatched rows, in any order
//   - extra_count: the number of unmatched items
//   - report_contains: a substring of the rendered report
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/basic.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
//
// Tests snapshot results with RunWithGolden or AssertGolden; the CLI uses
// Snapshot directly to write and compare golden files.
package harness
