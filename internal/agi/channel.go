// Package agi maps AGI call-variable traffic onto verification operations.
// The dialplan invokes one script per step and branches on the status
// variable written back.
package agi

// Channel is the call-variable surface of one AGI session. The production
// implementation wraps a FastAGI session; tests use an in-memory map.
type Channel interface {
	// GetVariable returns the value of a channel variable, or "" when unset.
	GetVariable(name string) (string, error)
	// SetVariable writes a channel variable for the dialplan to read.
	SetVariable(name, value string) error
	// Verbose writes a message to the Asterisk console at the given level.
	Verbose(msg string, level int) error
}

// Channel variables read from the dialplan.
const (
	varSpeechText   = "SPEECH_TEXT(0)"
	varUniqueID     = "UNIQUEID"
	varCallerNumber = "CALLERID(num)"
)

// Channel variables written back for the next dialplan step.
const (
	VarStatus        = "VERIF_STATUS"
	VarINN           = "VERIF_INN"
	VarCompany       = "VERIF_COMPANY"
	VarCodeword      = "VERIF_CODEWORD"
	VarProblemStatus = "PROBLEM_STATUS"
)
