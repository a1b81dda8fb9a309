package constants

// Outcome summarizes how a batch went.
type Outcome string

// Stable values (exposed in API responses).
const (
	OutcomeOK      Outcome = "OK"      // every document produced a record
	OutcomePartial Outcome = "PARTIAL" // some documents failed
	OutcomeEmpty   Outcome = "EMPTY"   // nothing could be processed
)

// PDF text backends.
const (
	BackendNative    = "native"
	BackendPdftotext = "pdftotext"
)
