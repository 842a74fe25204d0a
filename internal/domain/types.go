package domain

type Kind int

const (
	KindFile Kind = iota
	KindDir
	KindSymlink
	KindUnreadable
)

func (kind Kind) String() string {
	switch kind {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	case KindUnreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

type ScanState int

const (
	ScanPending ScanState = iota
	ScanPartial
	ScanComplete
)

func (state ScanState) String() string {
	switch state {
	case ScanPending:
		return "pending"
	case ScanPartial:
		return "partial"
	case ScanComplete:
		return "complete"
	default:
		return "unknown"
	}
}
