//go:build !ocr

package ocr

// Detect reports that no engine is available in this build.
func Detect() Capabilities {
	return Capabilities{}
}

// NewLineEngine returns ErrNotEnabled; rebuild with -tags ocr.
func NewLineEngine(languages string) (Engine, error) {
	return nil, ErrNotEnabled
}

// NewClassicEngine returns ErrNotEnabled; rebuild with -tags ocr.
func NewClassicEngine(languages string) (Engine, error) {
	return nil, ErrNotEnabled
}
