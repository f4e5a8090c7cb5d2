// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractor

import (
	"bytes"
	"fmt"
	"os"
)

const imageMarkitdown = "markitdown:latest"

// MarkitdownExtractor converts source documents by piping them through
// the markitdown container image.
type MarkitdownExtractor struct {
	runtime Runtime
}

// NewMarkitdownExtractor verifies the markitdown image exists in the
// given runtime before returning an extractor bound to it.
func NewMarkitdownExtractor(rt Runtime) (*MarkitdownExtractor, error) {
	if err := rt.HasImage(imageMarkitdown); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownExtractor{runtime: rt}, nil
}

// Extract pipes the document at srcPath through the markitdown container
// and returns the resulting text.
func (m *MarkitdownExtractor) Extract(srcPath string) (string, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", srcPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Pipe(imageMarkitdown, f, &out); err != nil {
		return "", fmt.Errorf("extracting %s with markitdown: %w", srcPath, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("markitdown produced empty output for %s", srcPath)
	}
	return out.String(), nil
}
