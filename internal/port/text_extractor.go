package port

import "docorch/internal/domain"

// TextExtractor turns raw document bytes into best-effort text.
type TextExtractor interface {
	Extract(data []byte, kind domain.DocumentKind) (string, error)
}
