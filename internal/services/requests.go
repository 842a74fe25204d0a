package services

type ScanRequest struct {
	RootPath string
	Workers  int
}

// DeleteRequest identifies the target by its name path from the scan root,
// the same identifier the layout segments carry.
type DeleteRequest struct {
	Path []string
}
