package extractor

import "strings"

// DecodeText decodes data as UTF-8, dropping invalid byte sequences.
func DecodeText(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}
