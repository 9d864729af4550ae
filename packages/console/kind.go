package console

// Kind identifies the console method that produced a line.
type Kind string

const (
	KindAssert         Kind = "assert"
	KindCount          Kind = "count"
	KindDebug          Kind = "debug"
	KindDir            Kind = "dir"
	KindDirxml         Kind = "dirxml"
	KindError          Kind = "error"
	KindGroup          Kind = "group"
	KindGroupCollapsed Kind = "groupCollapsed"
	KindInfo           Kind = "info"
	KindLog            Kind = "log"
	KindTime           Kind = "time"
	KindWarn           Kind = "warn"
)

// Kinds lists every kind a Console can emit.
var Kinds = []Kind{
	KindAssert,
	KindCount,
	KindDebug,
	KindDir,
	KindDirxml,
	KindError,
	KindGroup,
	KindGroupCollapsed,
	KindInfo,
	KindLog,
	KindTime,
	KindWarn,
}

// IsStderr reports whether lines of this kind are routed to the error sink.
func (k Kind) IsStderr() bool {
	switch k {
	case KindError, KindWarn, KindAssert:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}
