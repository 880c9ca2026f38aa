package session

import "eduproject/internal/api"

// Flow names the top-level navigation surface that should be active for a
// given session state.
type Flow int

const (
	FlowLoading Flow = iota
	FlowUnauthenticated
	FlowGuide
	FlowStudent
)

func (f Flow) String() string {
	switch f {
	case FlowLoading:
		return "loading"
	case FlowUnauthenticated:
		return "unauthenticated"
	case FlowGuide:
		return "guide"
	case FlowStudent:
		return "student"
	}
	return "unknown"
}

// SelectFlow maps a session snapshot to the flow that should be shown. It is
// pure: callers re-run it on every publish so a changed role takes effect
// without a logout. An authenticated profile with an unrecognized role falls
// back to the student flow, matching the backend's default role.
func SelectFlow(snap Snapshot) Flow {
	switch snap.Status {
	case StatusInitializing:
		return FlowLoading
	case StatusAuthenticated:
		if snap.Profile != nil && snap.Profile.Role == api.RoleGuide {
			return FlowGuide
		}
		return FlowStudent
	default:
		return FlowUnauthenticated
	}
}
