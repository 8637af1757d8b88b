package types

import "sort"

// ServerAction names a server lifecycle action offered by the dashboard.
// Values outside the known set are carried through unchanged so that newer
// configuration keeps working against an older engine.
type ServerAction string

const (
	ServerActionConfirm  ServerAction = "Confirm"
	ServerActionRevert   ServerAction = "Revert"
	ServerActionLock     ServerAction = "Lock"
	ServerActionUnlock   ServerAction = "Unlock"
	ServerActionStart    ServerAction = "Start"
	ServerActionUnpause  ServerAction = "Unpause"
	ServerActionResume   ServerAction = "Resume"
	ServerActionUnshelve ServerAction = "Unshelve"
	ServerActionSuspend  ServerAction = "Suspend"
	ServerActionShelve   ServerAction = "Shelve"
	ServerActionResize   ServerAction = "Resize"
	ServerActionReboot   ServerAction = "Reboot"
	ServerActionDelete   ServerAction = "Delete"
	ServerActionPause    ServerAction = "Pause"
	ServerActionStop     ServerAction = "Stop"
)

// KnownServerActions lists every action the dashboard knows how to offer
var KnownServerActions = []ServerAction{
	ServerActionConfirm,
	ServerActionRevert,
	ServerActionLock,
	ServerActionUnlock,
	ServerActionStart,
	ServerActionUnpause,
	ServerActionResume,
	ServerActionUnshelve,
	ServerActionSuspend,
	ServerActionShelve,
	ServerActionResize,
	ServerActionReboot,
	ServerActionDelete,
	ServerActionPause,
	ServerActionStop,
}

// IsKnown reports whether the action is one of KnownServerActions
func (a ServerAction) IsKnown() bool {
	for _, known := range KnownServerActions {
		if a == known {
			return true
		}
	}
	return false
}

// ActionSet is an unordered set of server actions
type ActionSet map[ServerAction]struct{}

// NewActionSet builds a set from a list, dropping duplicates
func NewActionSet(actions ...ServerAction) ActionSet {
	set := make(ActionSet, len(actions))
	for _, a := range actions {
		set[a] = struct{}{}
	}
	return set
}

// Has reports whether the action is in the set
func (s ActionSet) Has(action ServerAction) bool {
	_, ok := s[action]
	return ok
}

// Sorted returns the members in lexical order
func (s ActionSet) Sorted() []ServerAction {
	out := make([]ServerAction, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
