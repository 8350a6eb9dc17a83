package constants

// Storage keys. These match the keys used by earlier deployments of the
// tool, so an existing local cache or remote mirror keeps working.
const (
	StorageKeyUsers       = "tm_users"
	StorageKeyTasks       = "tm_tasks"
	StorageKeyCurrentUser = "tm_current_user"
)

// Session constants
const (
	SessionCookieName = "tm_session"
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "user"
)

// AdminNotes is the sentinel value in a user's notes field that confers
// administrator capability. Exact, case-sensitive match.
const AdminNotes = "AD"

// UnrankedLevel is the rank assigned to delegate-level tokens that carry
// no digits. It is larger than any real rank, so an unparsable level can
// receive delegation from anyone but can never delegate.
const UnrankedLevel = 99
