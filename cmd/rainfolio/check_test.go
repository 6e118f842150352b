package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rainfolio.dev/internal/config"
	"rainfolio.dev/internal/content"
	"rainfolio.dev/internal/models"
)

func TestReport(t *testing.T) {
	store := content.NewStore(&models.Content{
		Profile: models.Profile{Name: "Sam"},
		Projects: []models.Project{
			{ID: "a", Category: models.CategoryWeb},
			{ID: "b", Category: models.CategoryTools},
			{ID: "c", Category: models.CategoryWeb},
		},
	})

	var out bytes.Buffer
	require.NoError(t, report(&out, config.Default(), store))

	text := out.String()
	assert.Contains(t, text, `greeting:   "Hi, I'm Sam."`)
	assert.Contains(t, text, "projects All:     3")
	assert.Contains(t, text, "projects Web:     2")
	assert.Contains(t, text, "projects Data:    0")
}
