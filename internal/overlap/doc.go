// Package overlap computes speech-time statistics over annotated recordings.
//
// Given per-recording collections of [start, end) speech intervals, the
// package answers two questions: how much time has at least one speaker
// active (union duration), and how much time has two or more speakers active
// at once (overlap duration).
//
// # Sweep semantics
//
// Each interval contributes a +1 event at its start and a -1 event at its
// end. Events are sorted by time only; the sweep walks them left to right
// maintaining the count of open intervals and attributes each gap between
// consecutive events to the union and overlap accumulators according to the
// count at the start of the gap. Ties need no explicit ordering rule: the
// gap between equal-time events is zero, so no duration is ever attributed
// to the boundary instant itself. A consequence worth noting is that
// exactly-touching intervals ([0,1) then [1,2)) contribute no overlap.
//
// Every recording's sweep is a pure function of its own interval list, so
// recordings can be swept on parallel workers with a sequential fold at the
// end. No shared state exists between sweeps.
package overlap
