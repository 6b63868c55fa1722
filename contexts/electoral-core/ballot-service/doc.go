// Package ballotservice gates voter eligibility and records anonymous
// ballots. The ballot row never references the voter who cast it; the link is
// severed at the moment of recording and only the HasVoted flag remains on the
// voter side.
package ballotservice
