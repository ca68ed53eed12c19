package messages

// Account and announcement feed messages.
const (
	AccountFeedNotConfigured     = "announcements.url is not configured"
	AccountCreateRequestErrFmt   = "create announcements request: %w"
	AccountFetchErrFmt           = "fetch announcements: %w"
	AccountFetchStatusFmt        = "fetch announcements: unexpected status %s"
	AccountDecodeErrFmt          = "decode announcements: %w"
	AccountDeleteLocalErrFmt     = "delete local credential: %w"
	AccountRetryBudgetExhausted  = "retry budget exhausted"
	AccountNoAnnouncements       = "No announcements."
	AccountDeleteConfirmTitle    = "Delete your account?"
	AccountDeleteConfirmBody     = "This removes the enrolled PIN and biometric setting from this device."
	AccountDeleteCancelled       = "Account deletion cancelled."
	AccountDeleted               = "Account deleted."
	AccountDeleteRequiresConfirm = "delete-account needs --yes when not running in a terminal"
)
