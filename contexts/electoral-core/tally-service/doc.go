// Package tallyservice computes on-demand election results from the anonymous
// vote store: live per-candidate standings, per-list breakdowns by mesa, list
// and precinct, and the advisory closure check chairs run before closing.
package tallyservice
