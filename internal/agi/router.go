package agi

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"

	"call-verification/backend/internal/verify"
)

// Script names the dialplan dials, e.g. agi://host:4573/identify.
const (
	ScriptIdentify = "identify"
	ScriptCodeword = "codeword"
	ScriptProblem  = "problem"
)

// Verifier is the verification surface the router needs.
type Verifier interface {
	IdentifyCaller(ctx context.Context, transcript, callID, callerNumber string) verify.Identification
	ConfirmCodeword(ctx context.Context, transcript, callID, spokenINN, expectedCodeword string) verify.Confirmation
	SaveProblem(ctx context.Context, text, callID, spokenINN, callerNumber string) string
}

// Router dispatches one AGI request to the verification operation named by
// its script path.
type Router struct {
	verifier Verifier
}

// NewRouter returns a Router over the given verifier.
func NewRouter(verifier Verifier) *Router {
	return &Router{verifier: verifier}
}

// Handle runs the operation for the given script name against the channel.
// The script may carry a directory prefix or .agi suffix; both are ignored.
// An unknown script is an error, the call leg gets no status variable.
func (r *Router) Handle(ctx context.Context, script string, ch Channel) error {
	name := strings.TrimSuffix(path.Base(strings.TrimSpace(script)), ".agi")
	switch name {
	case ScriptIdentify:
		return r.identify(ctx, ch)
	case ScriptCodeword:
		return r.codeword(ctx, ch)
	case ScriptProblem:
		return r.problem(ctx, ch)
	}
	return fmt.Errorf("agi: unknown script %q", script)
}

func (r *Router) identify(ctx context.Context, ch Channel) error {
	text := getVar(ch, varSpeechText)
	callID := getVar(ch, varUniqueID)
	caller := getVar(ch, varCallerNumber)
	if caller == "" {
		caller = "unknown"
	}

	res := r.verifier.IdentifyCaller(ctx, text, callID, caller)
	if res.Status == verify.StatusSuccess {
		if err := ch.SetVariable(VarINN, res.INN); err != nil {
			return err
		}
		if err := ch.SetVariable(VarCompany, res.CompanyName); err != nil {
			return err
		}
		if err := ch.SetVariable(VarCodeword, res.CodeWord); err != nil {
			return err
		}
	}
	if err := ch.SetVariable(VarStatus, res.Status); err != nil {
		return err
	}
	verbose(ch, fmt.Sprintf("identify: call %s status %s inn %s", callID, res.Status, res.INN))
	return nil
}

func (r *Router) codeword(ctx context.Context, ch Channel) error {
	text := getVar(ch, varSpeechText)
	callID := getVar(ch, varUniqueID)
	spokenINN := getVar(ch, VarINN)
	expected := getVar(ch, VarCodeword)

	res := r.verifier.ConfirmCodeword(ctx, text, callID, spokenINN, expected)
	if err := ch.SetVariable(VarStatus, res.Status); err != nil {
		return err
	}
	verbose(ch, fmt.Sprintf("codeword: call %s status %s", callID, res.Status))
	return nil
}

func (r *Router) problem(ctx context.Context, ch Channel) error {
	text := getVar(ch, varSpeechText)
	callID := getVar(ch, varUniqueID)
	spokenINN := getVar(ch, VarINN)
	caller := getVar(ch, varCallerNumber)

	status := r.verifier.SaveProblem(ctx, text, callID, spokenINN, caller)
	if err := ch.SetVariable(VarProblemStatus, status); err != nil {
		return err
	}
	verbose(ch, fmt.Sprintf("problem: call %s status %s", callID, status))
	return nil
}

// getVar reads a channel variable, treating read failures as unset. The
// dialplan contract is "missing means empty", same as the status checks.
func getVar(ch Channel, name string) string {
	v, err := ch.GetVariable(name)
	if err != nil {
		log.Printf("agi: get %s: %v", name, err)
		return ""
	}
	return v
}

func verbose(ch Channel, msg string) {
	if err := ch.Verbose(msg, 3); err != nil {
		log.Printf("agi: verbose: %v", err)
	}
}
