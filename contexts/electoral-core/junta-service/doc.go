// Package juntaservice owns the polling-station lifecycle: precinct registry,
// batch creation of juntas, chair assignment, and the CREATED, OPEN,
// PENDING_REVIEW, APPROVED state machine.
package juntaservice
