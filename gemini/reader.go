// Package gemini implements the reader and validator oracles using
// Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/poiscout"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// maxPageTokens bounds the page content sent to the model; oversized
// pages are clipped proportionally.
const maxPageTokens = 100000

// Ensure Reader implements poiscout.PageReader at compile time.
var _ poiscout.PageReader = (*Reader)(nil)

// Reader implements poiscout.PageReader using Google Gemini. The model
// receives the page as markdown together with its candidate links and
// returns POI candidates, scored links, and a page summary as JSON.
type Reader struct {
	client  *genai.Client
	counter poiscout.TokenCounter
}

// NewReader creates a new Reader. A nil counter disables page truncation.
func NewReader(client *genai.Client, counter poiscout.TokenCounter) *Reader {
	return &Reader{client: client, counter: counter}
}

// ReadPage extracts POI and link findings from a page.
func (r *Reader) ReadPage(ctx context.Context, page *poiscout.PageContent) (*poiscout.PageFindings, error) {
	if page == nil || page.URL == "" {
		return nil, poiscout.Errorf(poiscout.EINVALID, "page URL required")
	}

	clipped := *page
	if r.counter != nil {
		tokens, err := r.counter.CountTokens(ctx, page.Markdown)
		if err == nil && tokens > maxPageTokens {
			cut := int(float64(len(page.Markdown)) * float64(maxPageTokens) / float64(tokens))
			clipped.Markdown = page.Markdown[:cut]
		}
	}

	prompt := BuildReaderPrompt(&clipped)
	config := BuildReaderConfig()

	result, err := r.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, poiscout.Errorf(poiscout.EINTERNAL, "gemini returned nil result")
	}

	return ParseFindings(result.Text())
}

// BuildReaderConfig returns the GenerateContentConfig for reader calls.
// The response is constrained to the findings JSON schema.
func BuildReaderConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: readerSystemInstruction}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"pois": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name":        {Type: genai.TypeString},
							"description": {Type: genai.TypeString},
							"category":    {Type: genai.TypeString},
							"location":    {Type: genai.TypeString},
						},
						Required: []string{"name", "description"},
					},
				},
				"links": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"url":   {Type: genai.TypeString},
							"score": {Type: genai.TypeNumber},
						},
						Required: []string{"url", "score"},
					},
				},
				"summary": {Type: genai.TypeString},
			},
			Required: []string{"pois", "links", "summary"},
		},
	}
}

const readerSystemInstruction = `You are in charge of reading web pages to gather Points of Interest (POIs).

For a given page your objective is to:
- Collect as many POIs as possible from the page content.
- Score every link of the page between 0 and 1 by the likelihood that the link will lead to more POIs.

POI COLLECTION INSTRUCTIONS:
- A POI is a specific place where people can visit or gather, such as tourist attractions, landmarks, parks, museums, cultural venues, and historic sites.
- Record the POI name, location, category and description.
- Category names like "Explore Chennai", "Things to do in Chennai" or "Places to visit in Chennai" are NOT POIs. The POIs are the specific names like "Marina Beach", "Kapaleeshwarar Temple" or "Arignar Anna Zoological Park". NEVER EVER break this rule.
- If there is no POI information in the given page then return an empty list of POIs.

LINK SCORING INSTRUCTIONS:
- If the link is likely to lead to more POIs, assign a score closer to 1. If the link is unlikely to lead to more POIs, assign a score closer to 0.
- If the url contains information about activities or broad categories where people can visit or gather such as tourist attractions, landmarks, parks, museums, cultural venues, and historic sites then assign a score closer to 1.0.
- If the url contains information about contact-us, transport, about-us, privacy-policy, terms-and-conditions, etc. then assign a score closer to 0.0.
- Few examples of the links with score:
    - link: https://www.kayak.co.in/Chennai.13827.guide/places, score: 1.0
    - link: https://www.kayak.co.in/Chennai.13827.guide/activities, score: 1.0
    - link: https://www.kayak.co.in/Chennai.13827.guide/hotels/Taj-Coromandel, score: 1.0
    - link: https://www.kayak.co.in/Chennai.13827.guide/nightlife, score: 1.0
    - link: https://www.kayak.co.in/Chennai.13827.guide/food, score: 0.75
    - link: https://www.kayak.co.in/Chennai.13827.guide/transport, score: 0.5
    - link: https://www.kayak.co.in/Chennai.13827.guide/contact-us, score: 0.0
    - link: https://www.kayak.co.in/Chennai.13827.guide/about-us, score: 0.0
    - link: https://www.kayak.co.in/Chennai.13827.guide/privacy-policy, score: 0.0
    - link: https://www.kayak.co.in/Chennai.13827.guide/faq, score: 0.0

SUMMARY:
- After collecting the POIs, write a short summary of the page. The summary must be in English!`

// BuildReaderPrompt builds the user prompt containing the page and its
// candidate links.
func BuildReaderPrompt(page *poiscout.PageContent) string {
	var sb strings.Builder
	sb.WriteString("<page>\n")
	fmt.Fprintf(&sb, "<url>%s</url>\n", page.URL)
	fmt.Fprintf(&sb, "<title>%s</title>\n", page.Title)
	fmt.Fprintf(&sb, "<content>%s</content>\n", page.Markdown)
	sb.WriteString("</page>\n\n")
	sb.WriteString("<links>\n")
	for _, link := range page.Links {
		sb.WriteString(link)
		sb.WriteString("\n")
	}
	sb.WriteString("</links>\n\n")
	fmt.Fprintf(&sb, "Task: Collect Points of Interest data and links with score from the webpage %s", page.URL)
	return sb.String()
}

type readerAnswer struct {
	POIs []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Location    string `json:"location"`
	} `json:"pois"`
	Links []struct {
		URL   string  `json:"url"`
		Score float64 `json:"score"`
	} `json:"links"`
	Summary string `json:"summary"`
}

// ParseFindings decodes the model's JSON answer into page findings.
// Link scores are clamped into [0, 1].
func ParseFindings(raw string) (*poiscout.PageFindings, error) {
	var answer readerAnswer
	if err := json.Unmarshal([]byte(raw), &answer); err != nil {
		return nil, poiscout.Errorf(poiscout.EINTERNAL, "malformed reader response: %v", err)
	}

	findings := &poiscout.PageFindings{Summary: answer.Summary}
	for _, poi := range answer.POIs {
		findings.POIs = append(findings.POIs, poiscout.POI{
			Name:        poi.Name,
			Description: poi.Description,
			Category:    poi.Category,
			Location:    poi.Location,
		})
	}
	for _, link := range answer.Links {
		score := link.Score
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		findings.Links = append(findings.Links, poiscout.LinkReport{URL: link.URL, Score: score})
	}
	return findings, nil
}
