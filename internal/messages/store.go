package messages

// Credential store messages.
const (
	StoreNoCredential       = "no credential enrolled"
	StoreCredentialDisabled = "credential is not enabled"
	StoreUnknownBackendFmt  = "unknown credential backend %q"
	StorePathRequired       = "credential store path is required"
	StoreSaltFailedFmt      = "generate salt: %w"
	StoreReadFailedFmt      = "read credential %s: %w"
	StoreDecodeFailedFmt    = "decode credential %s: %w"
	StoreEncodeFailedFmt    = "encode credential: %w"
	StoreWriteFailedFmt     = "write credential %s: %w"
	StoreDeleteFailedFmt    = "delete credential %s: %w"
	StoreMkdirFailedFmt     = "create credential directory %s: %w"
	StoreOpenLockFmt        = "open lock %s: %w"
	StoreLockFmt            = "lock %s: %w"
	StoreLockTimeoutFmt     = "timed out after %s waiting for credential lock"

	StoreOpenSQLiteFmt    = "open sqlite db: %w"
	StorePingSQLiteFmt    = "ping sqlite db: %w"
	StoreMigrateSQLiteFmt = "prepare sqlite schema: %w"
	StoreQuerySQLiteFmt   = "query credential: %w"
	StoreUpdateSQLiteFmt  = "update credential: %w"
)
