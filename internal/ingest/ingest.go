package ingest

// Document is one input file handed to the batch driver.
type Document struct {
	Name string // identifier shown in the results (file name)
	Path string // where the bytes live on disk
	// Err is set when the input could not even be read or staged. The batch
	// driver reports it as a failure in its input position.
	Err error
}

// DirStats summarizes a directory scan.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
	Failed  uint32
}
