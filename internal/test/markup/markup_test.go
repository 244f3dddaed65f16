package markup_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/markup"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/models"
)

func TestBuild_ContainsPostElements(t *testing.T) {
	builder := markup.NewBuilder()

	html, err := builder.Build(&models.MockupRequest{
		SessionID:   "S1",
		ProductID:   "P1",
		ProductName: "Quantum Kettle",
		ImageURL:    "https://cdn.example.com/p1.jpg",
		Caption:     "Boils water before you ask",
	})

	require.NoError(t, err)
	assert.Contains(t, html, `src="https://cdn.example.com/p1.jpg"`)
	assert.Contains(t, html, "Boils water before you ask")
	assert.Contains(t, html, "SuperPossible")
	assert.Contains(t, html, "Sponsored")
	assert.Contains(t, html, "Just now")
}

func TestBuild_LikesFormattedWithSeparator(t *testing.T) {
	builder := markup.NewBuilder()

	html, err := builder.Build(&models.MockupRequest{ImageURL: "https://cdn.example.com/p1.jpg"})

	require.NoError(t, err)
	likes := regexp.MustCompile(`([\d,]+) likes`).FindStringSubmatch(html)
	require.Len(t, likes, 2)
	if len(likes[1]) > 3 {
		assert.Contains(t, likes[1], ",")
	}
}

func TestBuild_OmitsEmptyCaption(t *testing.T) {
	builder := markup.NewBuilder()

	html, err := builder.Build(&models.MockupRequest{ImageURL: "https://cdn.example.com/p1.jpg"})

	require.NoError(t, err)
	assert.NotContains(t, html, `class="caption"`)
}

func TestBuild_EscapesCaptionMarkup(t *testing.T) {
	builder := markup.NewBuilder()

	html, err := builder.Build(&models.MockupRequest{
		ImageURL: "https://cdn.example.com/p1.jpg",
		Caption:  `<script>alert("x")</script>`,
	})

	require.NoError(t, err)
	assert.False(t, strings.Contains(html, "<script>alert"))
}
