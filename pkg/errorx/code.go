package errorx

type Code uint64

var Unknown = Error{Code: 100007, Kind: "Internal", Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009

	// Conflict codes
	AlreadyApplied   Code = 200001
	AlreadyValidated Code = 200002
	AlreadyRejected  Code = 200003

	// Precondition codes
	NotOpen               Code = 300001
	WrongType             Code = 300002
	IneligibleForActivity Code = 300003
	TokenMismatch         Code = 300004
)

// kinds are the identifiers clients switch on. They never change even if
// messages or codes are renumbered.
var kinds = map[Code]string{
	BadRequest:       "InvalidArgument",
	PermissionDenied: "Forbidden",
	NotFound:         "NotFound",
	Unauthenticated:  "Unauthenticated",
	Internal:         "Internal",
	Unavailable:      "Unavailable",
	NotImplemented:   "NotImplemented",

	AlreadyApplied:   "Conflict/AlreadyApplied",
	AlreadyValidated: "Conflict/AlreadyValidated",
	AlreadyRejected:  "Conflict/AlreadyRejected",

	NotOpen:               "Precondition/NotOpen",
	WrongType:             "Precondition/WrongType",
	IneligibleForActivity: "Precondition/IneligibleForActivity",
	TokenMismatch:         "Precondition/TokenMismatch",
}
