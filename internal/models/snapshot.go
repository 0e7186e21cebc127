package models

// Snapshot is the sole interchange format: the whole document is exported as
// one object and imported as a wholesale replace, never a partial merge.
type Snapshot struct {
	Tasks    []Task   `json:"tasks"`
	Courses  []Course `json:"courses"`
	Settings Settings `json:"settings"`
}
