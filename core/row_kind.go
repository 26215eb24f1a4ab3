package core

// RowKind describes the change a row represents in a changelog.
type RowKind int

const (
	RowKindInsert RowKind = iota
	RowKindUpdateBefore
	RowKindUpdateAfter
	RowKindDelete
)

func RowKindFromString(s string) RowKind {
	switch s {
	case RowKindUpdateBefore.String(), RowKindUpdateBefore.ShortString():
		return RowKindUpdateBefore
	case RowKindUpdateAfter.String(), RowKindUpdateAfter.ShortString():
		return RowKindUpdateAfter
	case RowKindDelete.String(), RowKindDelete.ShortString():
		return RowKindDelete
	default:
		return RowKindInsert
	}
}

func (k RowKind) String() string {
	switch k {
	case RowKindInsert:
		return "INSERT"
	case RowKindUpdateBefore:
		return "UPDATE_BEFORE"
	case RowKindUpdateAfter:
		return "UPDATE_AFTER"
	case RowKindDelete:
		return "DELETE"
	default:
		return "INSERT"
	}
}

// ShortString returns the changelog marker of the kind (e.g. "+I").
func (k RowKind) ShortString() string {
	switch k {
	case RowKindInsert:
		return "+I"
	case RowKindUpdateBefore:
		return "-U"
	case RowKindUpdateAfter:
		return "+U"
	case RowKindDelete:
		return "-D"
	default:
		return "+I"
	}
}
