package crop

// Request describes one crop/trim/rescale/re-encode operation. The JSON shape
// matches the payload sent by the desktop shell.
type Request struct {
	InputPath  string         `json:"input_path"`
	OutputPath string         `json:"output_path"`
	Crop       Rect           `json:"crop"`
	Output     OutputSettings `json:"output"`
	Trim       *TrimRange     `json:"trim,omitempty"`
}

// Rect is a crop rectangle in source-pixel coordinates.
type Rect struct {
	X      uint32 `json:"x"`
	Y      uint32 `json:"y"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// OutputSettings controls the encoded frame size and container/codec family.
type OutputSettings struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Format string `json:"format"`
}

// TrimRange is a source-relative time window in seconds.
type TrimRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
