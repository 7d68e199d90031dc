package interceptor

import "reflect"

// OutcomeKind labels an interceptor exit.
type OutcomeKind string

const (
	OutcomeOK          OutcomeKind = "ok"
	OutcomeWarning     OutcomeKind = "warning"
	OutcomeClientError OutcomeKind = "client_error"
	OutcomeFatal       OutcomeKind = "fatal"
)

// Outcome is the classification of a normal return.
type Outcome struct {
	Kind   OutcomeKind
	Reason string
}

// Absence is implemented by results that may denote a missing record or a
// rejected request, e.g. repository.DeleteMissing, service.CancelNotFound
// or a 4xx handler.Envelope.
type Absence interface {
	// AbsenceReason returns a short description and true when the value is
	// an absent/warning result.
	AbsenceReason() (string, bool)
}

// Classify maps a returned value to a happy or warning outcome.  It only
// looks at the shape of v.
func Classify(v any) Outcome {
	if isNil(v) {
		return Outcome{Kind: OutcomeWarning, Reason: "None"}
	}
	if a, ok := v.(Absence); ok {
		if reason, absent := a.AbsenceReason(); absent {
			return Outcome{Kind: OutcomeWarning, Reason: reason}
		}
	}
	return Outcome{Kind: OutcomeOK}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
