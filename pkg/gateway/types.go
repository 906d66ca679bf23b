package gateway

import (
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/anno"
)

// Wire types for the annotation backend. These mirror the backend's JSON
// shapes exactly; don't rename fields without a backend change.

// SessionInfo is one entry from GET /api/sessions.
type SessionInfo struct {
	Name        string `json:"name"`
	ImagesCount int    `json:"images_count"`
	LabelsCount int    `json:"labels_count"`
}

type sessionsResponse struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Sessions []SessionInfo `json:"sessions"`
}

// GenerateRequest is the multipart payload for POST /generate.
type GenerateRequest struct {
	ImageName string // original filename, only used for the form part name
	ImageData []byte // encoded image bytes, as uploaded
	Size      int    // output canvas size (square), eg 320 or 640
	X, Y      int    // placement of the uploaded image on the canvas
	RandomBg  bool
}

type generateResponse struct {
	Image string `json:"image"` // base64 data URL
}

// SaveRequest is the payload for POST /save_annotations.
type SaveRequest struct {
	Annotations []anno.Annotation
	Filename    string
	SessionName string
	ImageWidth  int
	ImageHeight int
	ImageData   string // base64 data URL of the clean image, without box overlays
}

type SavedFiles struct {
	Image  string `json:"image"`
	Labels string `json:"labels"`
}

// SaveResponse is the backend's reply to a successful save. YoloFormat holds
// the label lines the backend wrote; the client displays them verbatim and
// never computes them itself.
type SaveResponse struct {
	Success      bool       `json:"success"`
	Message      string     `json:"message"`
	OriginalName string     `json:"original_name"`
	UniqueName   string     `json:"unique_name"`
	Files        SavedFiles `json:"files"`
	YoloFormat   []string   `json:"yolo_format"`
}

// VisualizerAnnotation is one labeled box in the visualizer payload.
// YoloCoords is the normalized [x_center, y_center, width, height].
type VisualizerAnnotation struct {
	ClassID    int       `json:"class_id"`
	ClassName  string    `json:"class_name"`
	YoloCoords []float64 `json:"yolo_coords"`
}

type VisualizerImage struct {
	Filename    string                 `json:"filename"`
	ImageData   string                 `json:"image_data"` // base64 data URL
	Annotations []VisualizerAnnotation `json:"annotations"`
	HasLabels   bool                   `json:"has_labels"`
}

// VisualizeResponse is GET /api/session/{name}/visualize.
type VisualizeResponse struct {
	SessionName string            `json:"session_name"`
	Images      []VisualizerImage `json:"images"`
}

// Variant describes one augmentation transformation. Opaque to the client;
// the key is what gets sent back on start.
type Variant struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type augmentationInfoResponse struct {
	Success           bool               `json:"success"`
	Message           string             `json:"message"`
	AvailableVariants map[string]Variant `json:"available_variants"`
}

// Progress is one sample of GET /api/session/{name}/augmentation/progress.
type Progress struct {
	Success   bool `json:"success"`
	Current   int  `json:"current"`
	Total     int  `json:"total"`
	Completed bool `json:"completed"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BackendError is an application-level failure: HTTP 200 with success:false.
// Distinct from transport errors so callers can show the backend's message.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return "backend reported failure"
	}
	return e.Message
}
