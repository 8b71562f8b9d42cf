package port

// OutputStore places generated files in the report directory
type OutputStore interface {
	Ensure() error
	Path(name string) (string, error)
	SaveFile(name string, content []byte) (string, error)
}
