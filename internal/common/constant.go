package common

// Durable storage keys. Collections are stored as JSON arrays, the session
// as a single JSON object.
const (
	StorageKeyUsers    = "taskhub_users"
	StorageKeyProfiles = "taskhub_profiles"
	StorageKeyTasks    = "taskhub_tasks"
	StorageKeySession  = "taskhub_session"

	// StorageKeyMasterSession is a legacy flag cleared on sign-out.
	StorageKeyMasterSession = "master_session"
)

// Protected administrator account.
const (
	MasterUsername = "MasterDummy"
	MasterEmail    = "masterdummy@taskhub.local"
	MasterIDPrefix = "master-id"

	DefaultMasterPassword = "MasterDummy@123"
)

// EmailDomain is appended to normalized usernames to build login emails.
const EmailDomain = "taskhub.local"
