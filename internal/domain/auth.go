package domain

// ActionState is the closed result set for login and registration attempts.
// The UI branches on every tag, so callers must treat the set as exhaustive.
type ActionState string

const (
	StateIdle                 ActionState = "idle"
	StateInProgress           ActionState = "in_progress"
	StateSuccess              ActionState = "success"
	StateFailed               ActionState = "failed"
	StateInvalidData          ActionState = "invalid_data"
	StateUserExists           ActionState = "user_exists"
	StateRegistrationDisabled ActionState = "registration_disabled"
)
