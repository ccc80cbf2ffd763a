package port

import "context"

// TextExtractor turns uploaded file bytes into best-effort UTF-8 text with
// original line breaks preserved where possible. The extraction engine
// consumes its output verbatim and places no further format requirements on
// it.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, contentType string) (string, error)
}
