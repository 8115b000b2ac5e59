// Package filter turns raw dashboard inputs into validated Criteria and
// applies them to a menu.Dataset.
//
// The engine distinguishes two "nothing to show" outcomes:
//
//   - StatusIncomplete: a restaurant or one of the four nutrient ranges is
//     missing, so no filtering happened at all.
//   - StatusEmpty: the selection is complete but no item matched.
//
// Matched items are sorted by calories ascending with ties kept in load
// order, then partitioned by restaurant in first-appearance order.
// Every call recomputes from the full criteria; nothing is cached between
// calls.
package filter
