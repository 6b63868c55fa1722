// Package voterregistry is the roll of registered voters: identity, role,
// junta assignment, and account state. The HasVoted flag lives on the voter
// row but is owned by the ballot flow; the registry never writes it.
package voterregistry
