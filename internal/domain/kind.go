package domain

// Kind tags a resource for permission checks and error reporting.
// Denial and not-found errors are derived from the kind statically,
// so one authorization call site serves every resource type.
type Kind string

const (
	KindMessageboard Kind = "messageboard"
	KindTopic        Kind = "topic"
	KindPrivateTopic Kind = "private topic"
	KindUser         Kind = "user"
)

// Resource is anything the gate can authorize access to.
type Resource interface {
	ResourceKind() Kind
}
