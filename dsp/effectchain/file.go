package effectchain

// File names the logical source or destination of a chain buffer.
// It only stores the path; no audio is read or written.
type File struct {
	path string
}

// NewFile returns a File for path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the stored path. A nil File has an empty path.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

func (f *File) String() string {
	return f.Path()
}
