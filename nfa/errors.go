package nfa

// InternalError marks a fatal internal invariant violation (spec §7:
// "Fatal internal invariant violations... should panic/abort with an
// internal-error marker; they are not expected on any input"). Nothing
// in this module recovers it, the CLI included: a panic carrying it
// ends the process.
type InternalError struct {
	Message string
}

func (e InternalError) Error() string {
	return "nfa: internal error: " + e.Message
}
