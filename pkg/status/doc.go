// Package status reads the link state of a package back from the
// filesystem.
//
// Nothing here is cached or persisted. Inspect is a pure query that is run
// again before every mutation, and Classify folds the raw snapshot into a
// closed set of states so each transition checks its preconditions with a
// single switch.
package status
