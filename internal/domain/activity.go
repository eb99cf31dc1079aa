package domain

// Tags holds the taxonomy matches for one activity.
type Tags struct {
	Roles  []string
	Skills []string
}

// ActivityRecord is one user-reported action plus its energy
// classification and tags. Records accumulate in the session and are
// handed to the persistence gateway as a batch.
type ActivityRecord struct {
	ID      string
	Text    string
	Energy  EnergyStatus
	Tags    Tags
	Summary string
}

// Session is per-user working memory. It is never persisted: the durable
// artifacts are the appended rows and the taxonomy file.
type Session struct {
	UserID       UserID
	State        DialogState
	Activities   []ActivityRecord
	Draft        *ActivityRecord
	ReminderTime *TimeOfDay
}

// Directive is the single outbound reply the core produces for every
// inbound event. Options, when present, are quick-reply suggestions the
// transport may render as a keyboard.
type Directive struct {
	UserID  UserID   `json:"user_id"`
	Text    string   `json:"text"`
	Options []string `json:"options,omitempty"`
}
