package models

// Request is the opaque view of an inbound request the core works against.
// The host adapts its transport (HTTP form, JSON body, test double) behind
// these two accessors; the core never interprets framing.
type Request interface {
	// Parameter returns the named request parameter, "" when absent.
	Parameter(name string) string

	// Header returns the named request header, "" when absent.
	Header(name string) string
}
