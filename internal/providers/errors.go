package providers

import (
	"errors"
	"fmt"
)

// ErrProviderUnavailable is returned when a decorator has no inner provider to call.
var ErrProviderUnavailable = errors.New("provider unavailable")

// Operations name the two request categories.
const (
	OpSchedule = "schedule"
	OpGameInfo = "game_info"
)

// FetchKind classifies why a fetch failed. Callers treat every kind as the same failure;
// the kind only feeds logs and metrics.
type FetchKind string

const (
	KindRequest FetchKind = "request"
	KindNetwork FetchKind = "network"
	KindStatus  FetchKind = "status"
	KindDecode  FetchKind = "decode"
)

// FetchError wraps any failure on the fetch path.
type FetchError struct {
	Op         string
	Kind       FetchKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s fetch failed (%s)", e.Op, e.Kind)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s status=%d", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// KindOf reports the failure kind of err, defaulting to network for foreign errors.
func KindOf(err error) FetchKind {
	if fe, ok := AsFetchError(err); ok && fe.Kind != "" {
		return fe.Kind
	}
	return KindNetwork
}
