// Package harness runs dashboard scenarios as executable contract tests.
//
// A scenario supplies a dataset, a sequence of input snapshots, and
// assertions about what the dispatcher did with them. Every scenario runs
// against a fresh Dispatcher with fixed cycle IDs so results are
// reproducible and can be compared against golden snapshots.
//
// # Scenario Format
//
//	name: partial_update
//	description: "Moving a slider leaves the histogram alone"
//	cycle_ids: [c1, c2]
//	config: |
//	  histogram: bins: 4
//	dataset:
//	  - {restaurant: A, item_name: Burger, protein: 10, carbohydrates: 30, total_fat: 12, calories: 300}
//	steps:
//	  - defaults: true
//	    input:
//	      restaurants: [A]
//	    expect:
//	      status: matched
//	      recomputed: [menu-items, scatter, composition, histogram]
//	assertions:
//	  - type: artifact_state
//	    output: menu-items
//	    state: rendered
//
// The dataset may instead be given as inline CSV text under csv:. A step
// with defaults: true starts from the dashboard's initial input (every
// range spanning the dataset bounds) and overlays what the step states.
//
// # Assertion Types
//
//   - output_state: slot lifecycle state (idle, rendered, error)
//   - artifact_state: artifact state (incomplete, empty, rendered, error), optional message
//   - table_titles: restaurant table titles in order
//   - table_rows: item names of one table in order
//   - slice_value: one composition slice value
//   - histogram_counts: bin counts of one histogram series
//   - scatter_points: number of points in one scatter series
//   - recompute_count: how many cycles recomputed an output
package harness
