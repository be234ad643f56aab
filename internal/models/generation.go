package models

// GeneratedFile represents one rendered wrapper class ready to be written
type GeneratedFile struct {
	ClassName string // name of the generated class
	FilePath  string // path where the file should be written
	Content   []byte // rendered source
	Slots     int    // slots that produced a field and method
	Skipped   int    // matched slots that failed synthesis
}
