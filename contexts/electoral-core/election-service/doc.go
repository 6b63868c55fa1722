// Package electionservice implements the election registry inside the
// electoral-core context.
//
// The module owns election lifecycle records (with lazy status derivation
// from the injected clock), ballot lists, and candidate registration under
// the configuration-phase rules. Business rules live in the application
// layer; infrastructure stays behind ports and adapters.
package electionservice
