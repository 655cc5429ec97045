package chatbridge

// Priority is the notification priority hint passed to the host. Zero value
// is the platform default.
type Priority int

const (
	PriorityDefault Priority = iota
	PriorityLow
	PriorityMin
	PriorityHigh
	PriorityMax
)

// wireValue maps a priority onto the integer the host expects. Anything
// unrecognized degrades to the default.
func (p Priority) wireValue() int {
	switch p {
	case PriorityLow:
		return -1
	case PriorityMin:
		return -2
	case PriorityHigh:
		return 1
	case PriorityMax:
		return 2
	default:
		return 0
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMin:
		return "min"
	case PriorityHigh:
		return "high"
	case PriorityMax:
		return "max"
	default:
		return "default"
	}
}

// Importance is the notification-channel importance hint. Zero value is the
// platform default.
type Importance int

const (
	ImportanceDefault Importance = iota
	ImportanceUnspecified
	ImportanceNone
	ImportanceMin
	ImportanceLow
	ImportanceHigh
	ImportanceMax
)

func (i Importance) wireValue() int {
	switch i {
	case ImportanceUnspecified:
		return -1000
	case ImportanceNone:
		return 0
	case ImportanceMin:
		return 1
	case ImportanceLow:
		return 2
	case ImportanceHigh:
		return 4
	case ImportanceMax:
		return 5
	default:
		return 3
	}
}

func (i Importance) String() string {
	switch i {
	case ImportanceUnspecified:
		return "unspecified"
	case ImportanceNone:
		return "none"
	case ImportanceMin:
		return "min"
	case ImportanceLow:
		return "low"
	case ImportanceHigh:
		return "high"
	case ImportanceMax:
		return "max"
	default:
		return "default"
	}
}

// TokenStatus is the host-reported state of the user's identity JWT.
type TokenStatus int

const (
	TokenNotSet TokenStatus = iota
	TokenNotProcessed
	TokenValid
	TokenInvalid
	TokenExpired
)

// ParseTokenStatus maps the host's reply string onto a TokenStatus. Any
// value outside the known set maps to TokenNotSet so a raw host string never
// leaks to callers.
func ParseTokenStatus(s string) TokenStatus {
	switch s {
	case "TOKEN_NOT_PROCESSED":
		return TokenNotProcessed
	case "TOKEN_VALID":
		return TokenValid
	case "TOKEN_INVALID":
		return TokenInvalid
	case "TOKEN_EXPIRED":
		return TokenExpired
	default:
		return TokenNotSet
	}
}

func (t TokenStatus) String() string {
	switch t {
	case TokenNotProcessed:
		return "not_processed"
	case TokenValid:
		return "valid"
	case TokenInvalid:
		return "invalid"
	case TokenExpired:
		return "expired"
	default:
		return "not_set"
	}
}

// FilterType selects what FAQ filter tags match against.
type FilterType string

const (
	FilterByCategory FilterType = "category"
	FilterByArticle  FilterType = "article"
)
