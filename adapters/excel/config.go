package excel

// ReaderConfig holds configuration for spreadsheet decoding
type ReaderConfig struct {
	MaxBytes int64  `json:"max_bytes"` // 0 disables the size check
	Sheet    string `json:"sheet"`     // empty selects the first worksheet
}

// DefaultReaderConfig returns sensible defaults for survey uploads
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		MaxBytes: 50 * 1024 * 1024,
	}
}

// SupportedExtensions are the upload extensions the reader accepts
var SupportedExtensions = []string{".xlsx", ".xls", ".csv"}
