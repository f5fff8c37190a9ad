package feed

import (
	"testing"
)

func TestFirstImageURL(t *testing.T) {
	tests := []struct {
		name     string
		markup   string
		expected string
	}{
		{
			name:     "single image",
			markup:   `<p>Hello <img src="https://img.example.com/1.png" alt="one"/></p>`,
			expected: "https://img.example.com/1.png",
		},
		{
			name:     "first of several",
			markup:   `<img src="https://img.example.com/1.png"><img src="https://img.example.com/2.png">`,
			expected: "https://img.example.com/1.png",
		},
		{
			name:     "no image",
			markup:   `<p>Just text</p>`,
			expected: "",
		},
		{
			name:     "image without src",
			markup:   `<img alt="broken"><img src="https://img.example.com/2.png">`,
			expected: "https://img.example.com/2.png",
		},
		{
			name:     "empty markup",
			markup:   "",
			expected: "",
		},
		{
			name:     "unclosed elements",
			markup:   `<div><p>text`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstImageURL(tt.markup); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
