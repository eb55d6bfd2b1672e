package ports

// DocumentStore provides access to a directory of model documents.
type DocumentStore interface {
	// List returns the paths of the model documents, in a stable order.
	// The listing is a snapshot taken when List is called.
	List() ([]string, error)

	// Read returns the content of the document at path.
	Read(path string) ([]byte, error)

	// Write replaces the content of the file at path, creating it if needed.
	Write(path string, data []byte) error

	// Root returns the absolute path of the directory backing the store.
	Root() string
}
