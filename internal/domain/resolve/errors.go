package resolve

import "errors"

// Sentinel kinds for resolution failures. These allow errors.Is from callers
// that want to distinguish "not indexed yet" from "not our business".
var (
	ErrNoRecentMatch       = errors.New("no recent match found")
	ErrQueueNotMonitored   = errors.New("match queue not monitored")
	ErrParticipantNotFound = errors.New("player not in match participants")
)
