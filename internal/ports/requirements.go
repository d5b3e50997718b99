package ports

// RequirementsPort reads an exported requirements listing and returns
// the pinned dependency lines, in file order.
type RequirementsPort interface {
	ReadPinned(path string) ([]string, error)
}
