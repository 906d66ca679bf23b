package statedb

// VariableKey is a key in the variable table.
type VariableKey string

const (
	VarCurrentSession VariableKey = "CurrentSession"
)

type Variable struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `json:"value"`
}

// SaveRecord is one completed save, as reported by the backend.
type SaveRecord struct {
	ID              int64  `gorm:"primaryKey" json:"id"`
	CreatedAt       int64  `json:"createdAt"` // unix milliseconds
	Session         string `json:"session"`
	OriginalName    string `json:"originalName"`
	UniqueName      string `json:"uniqueName"`
	ImageFile       string `json:"imageFile"`
	LabelsFile      string `json:"labelsFile"`
	AnnotationCount int    `json:"annotationCount"`
}

func (SaveRecord) TableName() string {
	return "save_record"
}
