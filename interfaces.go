package foldertree

// Operator defines the namespace operations external consumers need.
// Every method is safe to call from any number of goroutines.
type Operator interface {
	// List returns the names of the direct children of path, sorted and
	// joined with ","; empty string when the folder has no children
	List(path string) (string, error)

	// Create adds an empty folder at path. Its parent must exist
	Create(path string) error

	// Remove deletes the empty folder at path
	Remove(path string) error

	// Move relocates the subtree at source so it becomes target.
	// Moving a path onto itself is a successful no-op
	Move(source, target string) error
}
