// Package roster defines the student model and the fixed dataset the
// report is computed over.
//
// A Roster is an immutable, ordered sequence of Student values. Accessors
// hand out copies, and Pipeline builds a fresh pull-based source on every
// call, so no derived view can mutate the roster or an earlier view.
package roster
