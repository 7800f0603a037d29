// Package verify composes transcript decoding, directory lookup, codeword
// matching, and attempt persistence into the operations the call-flow engine
// invokes for one call leg.
package verify

import (
	"context"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	attemptdomain "call-verification/backend/internal/attempt/domain"
	clientdomain "call-verification/backend/internal/client/domain"
	"call-verification/backend/internal/codeword"
	"call-verification/backend/internal/identifier"
	"call-verification/backend/internal/numeral"
	"call-verification/backend/internal/telemetry"
	"call-verification/backend/internal/transcript"
)

// Statuses written back to the call flow after identification or codeword
// confirmation. The dialplan branches on these values.
const (
	StatusSuccess  = "SUCCESS"
	StatusNotFound = "NOT_FOUND"
	StatusInvalid  = "INVALID"
	StatusWrong    = "WRONG"
	StatusNoINN    = "NO_INN"
	StatusError    = "ERROR"
)

// Statuses for problem-description capture.
const (
	ProblemSaved      = "SAVED"
	ProblemNoText     = "NO_TEXT"
	ProblemNoUniqueID = "NO_UNIQUEID"
	ProblemError      = "ERROR"
)

const defaultLookupTimeout = 5 * time.Second

const instrumentationName = "callverif.verify"

// ClientDirectory is the minimal read side of the clients directory needed
// by the service.
type ClientDirectory interface {
	GetActiveByINN(ctx context.Context, inn int64) (*clientdomain.Client, error)
}

// AttemptStore is the minimal attempt persistence needed by the service.
type AttemptStore interface {
	FindOrCreate(ctx context.Context, callID, spokenINN, callerNumber string) (*attemptdomain.Attempt, error)
	RecordIdentification(ctx context.Context, callID, spokenINN, callerNumber string, matchedClientID *int64) error
	ConfirmCodeword(ctx context.Context, callID, spokenINN, spokenCodeword string) (bool, error)
	AttachProblemText(ctx context.Context, callID, spokenINN, callerNumber, text string) error
}

// Identification is the outcome of IdentifyCaller. CompanyName and CodeWord
// are set only on SUCCESS. INN is also set on NOT_FOUND, where the decode
// succeeded but no active client carries it; the transport layer decides what
// to expose per status.
type Identification struct {
	Status      string
	INN         string
	CompanyName string
	CodeWord    string
}

// Confirmation is the outcome of ConfirmCodeword.
type Confirmation struct {
	Status string
}

// Service runs the verification operations. One instance is shared by all
// call legs; all per-call state lives in the store.
type Service struct {
	clients       ClientDirectory
	attempts      AttemptStore
	lookupTimeout time.Duration
	emitter       telemetry.EventEmitter
	tracer        trace.Tracer
	operations    metric.Int64Counter
}

// NewService returns a Service. lookupTimeout bounds every directory lookup
// and persistence call on the identification path; a non-positive value
// falls back to 5s. emitter may be nil to disable event emission.
func NewService(clients ClientDirectory, attempts AttemptStore, lookupTimeout time.Duration, emitter telemetry.EventEmitter) *Service {
	if lookupTimeout <= 0 {
		lookupTimeout = defaultLookupTimeout
	}
	operations, err := otel.Meter(instrumentationName).Int64Counter(
		"verification.operations",
		metric.WithDescription("Verification operations by operation and status."),
	)
	if err != nil {
		log.Printf("verify: create operations counter: %v", err)
	}
	return &Service{
		clients:       clients,
		attempts:      attempts,
		lookupTimeout: lookupTimeout,
		emitter:       emitter,
		tracer:        otel.Tracer(instrumentationName),
		operations:    operations,
	}
}

// IdentifyCaller decodes a tax identifier from the transcript, looks up the
// active client carrying it, and records the attempt. Any panic or failure
// on the lookup path degrades to ERROR; the call leg never sees an error
// value, only a status.
func (s *Service) IdentifyCaller(ctx context.Context, rawTranscript, callID, callerNumber string) (result Identification) {
	ctx, span := s.tracer.Start(ctx, "verify.IdentifyCaller",
		trace.WithAttributes(attribute.String("call.uniqueid", callID)))
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("verify: identify panic for call %s: %v", callID, r)
			result = Identification{Status: StatusError}
		}
		s.finish(ctx, span, telemetry.EventIdentify, result.Status, callID, callerNumber,
			map[string]string{"inn": result.INN})
	}()

	candidates := numeral.Decode(transcript.Normalize(rawTranscript))
	id, err := identifier.FromCandidates(candidates)
	if err != nil {
		// Keep a trace of the failed attempt, but INVALID stands even if
		// the insert fails.
		opCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
		defer cancel()
		if _, ferr := s.attempts.FindOrCreate(opCtx, callID, "", callerNumber); ferr != nil {
			log.Printf("verify: record invalid attempt for call %s: %v", callID, ferr)
		}
		return Identification{Status: StatusInvalid}
	}

	opCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	client, err := s.clients.GetActiveByINN(opCtx, id.Value())
	if err != nil {
		log.Printf("verify: lookup client by inn %s for call %s: %v", id, callID, err)
		return Identification{Status: StatusError, INN: id.String()}
	}
	if client == nil {
		if err := s.attempts.RecordIdentification(opCtx, callID, id.String(), callerNumber, nil); err != nil {
			log.Printf("verify: record unmatched attempt for call %s: %v", callID, err)
			return Identification{Status: StatusError, INN: id.String()}
		}
		return Identification{Status: StatusNotFound, INN: id.String()}
	}

	if err := s.attempts.RecordIdentification(opCtx, callID, id.String(), callerNumber, &client.ID); err != nil {
		log.Printf("verify: record matched attempt for call %s: %v", callID, err)
		return Identification{Status: StatusError, INN: id.String()}
	}
	return Identification{
		Status:      StatusSuccess,
		INN:         id.String(),
		CompanyName: client.CompanyName,
		CodeWord:    client.CodeWord,
	}
}

// ConfirmCodeword checks the spoken phrase against the expected codeword and
// latches the attempt on success. The matcher decides SUCCESS or WRONG; a
// persistence failure after a positive match is logged but does not change
// the outcome, since the caller already passed the check.
func (s *Service) ConfirmCodeword(ctx context.Context, rawTranscript, callID, spokenINN, expectedCodeword string) (result Confirmation) {
	ctx, span := s.tracer.Start(ctx, "verify.ConfirmCodeword",
		trace.WithAttributes(attribute.String("call.uniqueid", callID)))
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("verify: codeword panic for call %s: %v", callID, r)
			result = Confirmation{Status: StatusError}
		}
		s.finish(ctx, span, telemetry.EventCodewordCheck, result.Status, callID, "",
			map[string]string{"inn": spokenINN})
	}()

	if strings.TrimSpace(spokenINN) == "" {
		return Confirmation{Status: StatusNoINN}
	}
	if strings.TrimSpace(expectedCodeword) == "" {
		// The identify step did not complete; nothing to check against.
		return Confirmation{Status: StatusError}
	}

	spoken := transcript.Normalize(rawTranscript)
	if !codeword.Matches(spoken, expectedCodeword) {
		return Confirmation{Status: StatusWrong}
	}

	opCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()
	flipped, err := s.attempts.ConfirmCodeword(opCtx, callID, spokenINN, spoken)
	if err != nil {
		log.Printf("verify: latch success for call %s: %v", callID, err)
	} else if !flipped {
		log.Printf("verify: call %s inn %s already confirmed or has no attempt", callID, spokenINN)
	}
	return Confirmation{Status: StatusSuccess}
}

// SaveProblem attaches a free-text problem description to the call's latest
// attempt, creating an unsuccessful attempt when the call has none.
func (s *Service) SaveProblem(ctx context.Context, text, callID, spokenINN, callerNumber string) (status string) {
	ctx, span := s.tracer.Start(ctx, "verify.SaveProblem",
		trace.WithAttributes(attribute.String("call.uniqueid", callID)))
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("verify: problem capture panic for call %s: %v", callID, r)
			status = ProblemError
		}
		s.finish(ctx, span, telemetry.EventProblemCapture, status, callID, callerNumber, nil)
	}()

	if strings.TrimSpace(callID) == "" {
		return ProblemNoUniqueID
	}
	if strings.TrimSpace(text) == "" {
		return ProblemNoText
	}

	opCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()
	if err := s.attempts.AttachProblemText(opCtx, callID, spokenINN, callerNumber, text); err != nil {
		log.Printf("verify: attach problem text for call %s: %v", callID, err)
		return ProblemError
	}
	return ProblemSaved
}

// finish records the operation counter, span status attribute, and the
// telemetry event for one completed operation.
func (s *Service) finish(ctx context.Context, span trace.Span, eventType, status, callID, callerNumber string, meta map[string]string) {
	span.SetAttributes(attribute.String("verification.status", status))
	if s.operations != nil {
		s.operations.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", eventType),
			attribute.String("status", status),
		))
	}
	event := telemetry.NewEvent(eventType, status, callID, callerNumber)
	for k, v := range meta {
		if v == "" {
			delete(meta, k)
		}
	}
	if len(meta) > 0 {
		event = event.WithMetadata(meta)
	}
	telemetry.EmitAsync(s.emitter, event)
}
