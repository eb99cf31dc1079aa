package domain

// UserID identifies one chat user. The transport layer decides what it
// actually contains (a telegram chat id, a test fixture name, ...).
type UserID string

// EnergyStatus classifies how an activity affected the user's energy.
type EnergyStatus string

const (
	// EnergyUnset is only valid between creating a draft record and the
	// user's energy answer. A record with EnergyUnset must never reach
	// the persistence gateway.
	EnergyUnset    EnergyStatus = ""
	EnergyPositive EnergyStatus = "positive"
	EnergyNegative EnergyStatus = "negative"
	EnergyNeutral  EnergyStatus = "neutral"
)

// DialogState is the current position of a user's session in the dialog
// state machine.
type DialogState string

const (
	StateCollectingActivity  DialogState = "collecting_activity"
	StateClassifyingEnergy   DialogState = "classifying_energy"
	StateConfiguringReminder DialogState = "configuring_reminder"
	StateReviewingBatch      DialogState = "reviewing_batch"
	StateDone                DialogState = "done"
	StateCancelled           DialogState = "cancelled"
)

// TimeOfDay is a wall-clock time in the reference time zone.
type TimeOfDay struct {
	Hour   int
	Minute int
}
