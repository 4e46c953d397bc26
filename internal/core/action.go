// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

package core

// Action is a lifecycle operation that can be requested on a resource.
type Action int

const (
	ActionStart Action = iota
	ActionStop
	ActionRestart
	ActionTerminate
	ActionViewDetails
	ActionViewLogs
	ActionModify
)

// Label returns the display name for the action.
func (a Action) Label() string {
	switch a {
	case ActionStart:
		return "Start"
	case ActionStop:
		return "Stop"
	case ActionRestart:
		return "Restart"
	case ActionTerminate:
		return "Terminate"
	case ActionViewDetails:
		return "View Details"
	case ActionViewLogs:
		return "View Logs"
	case ActionModify:
		return "Modify"
	default:
		return "Unknown"
	}
}

// IsDestructive reports whether the action is irreversible and must go
// through the confirmation flow before execution.
func (a Action) IsDestructive() bool {
	return a == ActionTerminate
}

// PastTense returns the verb used in post-action messages, e.g.
// "Successfully stopped 'web-1'".
func (a Action) PastTense() string {
	switch a {
	case ActionStart:
		return "started"
	case ActionStop:
		return "stopped"
	case ActionRestart:
		return "restarted"
	case ActionTerminate:
		return "terminated"
	default:
		return "completed action on"
	}
}
