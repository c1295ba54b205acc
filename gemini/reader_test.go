package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/poiscout"
	"github.com/fwojciec/poiscout/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_ReadPage_ReturnsErrorWhenURLEmpty(t *testing.T) {
	t.Parallel()

	reader := gemini.NewReader(nil, nil) // nil client ok for this test

	_, err := reader.ReadPage(context.Background(), &poiscout.PageContent{})

	require.Error(t, err)
	assert.Equal(t, poiscout.EINVALID, poiscout.ErrorCode(err))
	assert.Contains(t, poiscout.ErrorMessage(err), "page URL required")
}

func TestBuildReaderConfig_ConstrainsResponseToJSON(t *testing.T) {
	t.Parallel()

	config := gemini.BuildReaderConfig()

	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.ResponseSchema)
	assert.Contains(t, config.ResponseSchema.Properties, "pois")
	assert.Contains(t, config.ResponseSchema.Properties, "links")
	assert.Contains(t, config.ResponseSchema.Properties, "summary")
	assert.ElementsMatch(t, []string{"pois", "links", "summary"}, config.ResponseSchema.Required)
}

func TestBuildReaderConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildReaderConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "Points of Interest")
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "score closer to 1")
}

func TestBuildReaderConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildReaderConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.4, *config.Temperature, 0.001)
}

func TestBuildReaderPrompt_ContainsPageAndLinks(t *testing.T) {
	t.Parallel()

	page := &poiscout.PageContent{
		URL:      "https://example.com/guide",
		Title:    "Chennai Guide",
		Markdown: "Marina Beach is a natural urban beach.",
		Links: []string{
			"https://example.com/guide/places",
			"https://example.com/guide/food",
		},
	}

	prompt := gemini.BuildReaderPrompt(page)

	assert.Contains(t, prompt, "<url>https://example.com/guide</url>")
	assert.Contains(t, prompt, "<title>Chennai Guide</title>")
	assert.Contains(t, prompt, "Marina Beach is a natural urban beach.")
	assert.Contains(t, prompt, "https://example.com/guide/places\n")
	assert.Contains(t, prompt, "https://example.com/guide/food\n")
	assert.Contains(t, prompt, "Task: Collect Points of Interest data and links with score from the webpage https://example.com/guide")
}

func TestParseFindings_DecodesAnswer(t *testing.T) {
	t.Parallel()

	raw := `{
		"pois": [
			{"name": "Marina Beach", "description": "A natural urban beach.", "category": "Beach", "location": "Chennai"}
		],
		"links": [
			{"url": "https://example.com/guide/places", "score": 0.9},
			{"url": "https://example.com/guide/contact-us", "score": 0}
		],
		"summary": "A guide to Chennai."
	}`

	findings, err := gemini.ParseFindings(raw)

	require.NoError(t, err)
	assert.Equal(t, []poiscout.POI{{
		Name:        "Marina Beach",
		Description: "A natural urban beach.",
		Category:    "Beach",
		Location:    "Chennai",
	}}, findings.POIs)
	assert.Equal(t, []poiscout.LinkReport{
		{URL: "https://example.com/guide/places", Score: 0.9},
		{URL: "https://example.com/guide/contact-us", Score: 0},
	}, findings.Links)
	assert.Equal(t, "A guide to Chennai.", findings.Summary)
}

func TestParseFindings_ClampsScores(t *testing.T) {
	t.Parallel()

	raw := `{
		"pois": [],
		"links": [
			{"url": "https://example.com/a", "score": 1.5},
			{"url": "https://example.com/b", "score": -0.2}
		],
		"summary": ""
	}`

	findings, err := gemini.ParseFindings(raw)

	require.NoError(t, err)
	assert.Equal(t, 1.0, findings.Links[0].Score)
	assert.Equal(t, 0.0, findings.Links[1].Score)
}

func TestParseFindings_AllowsEmptyFindings(t *testing.T) {
	t.Parallel()

	findings, err := gemini.ParseFindings(`{"pois": [], "links": [], "summary": "Nothing here."}`)

	require.NoError(t, err)
	assert.Empty(t, findings.POIs)
	assert.Empty(t, findings.Links)
}

func TestParseFindings_ReturnsErrorOnMalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := gemini.ParseFindings("TERMINATE")

	require.Error(t, err)
	assert.Equal(t, poiscout.EINTERNAL, poiscout.ErrorCode(err))
}
