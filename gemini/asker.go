package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/poiscout"
	"google.golang.org/genai"
)

// Ensure Asker implements poiscout.Asker at compile time.
var _ poiscout.Asker = (*Asker)(nil)

// Asker implements poiscout.Asker using Google Gemini.
type Asker struct {
	client *genai.Client
	pois   poiscout.POIService
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, pois poiscout.POIService) *Asker {
	return &Asker{client: client, pois: pois}
}

// Ask answers a natural language question about the POIs recorded
// by a crawl.
func (a *Asker) Ask(ctx context.Context, crawlID, question string) (string, error) {
	if crawlID == "" {
		return "", poiscout.Errorf(poiscout.EINVALID, "crawl ID required")
	}
	if question == "" {
		return "", poiscout.Errorf(poiscout.EINVALID, "question required")
	}

	pois, err := a.pois.FindPOIs(ctx, poiscout.POIFilter{CrawlID: &crawlID})
	if err != nil {
		return "", err
	}
	if len(pois) == 0 {
		return "", poiscout.Errorf(poiscout.ENOTFOUND, "no POIs recorded for crawl %q", crawlID)
	}

	prompt := BuildAskerPrompt(pois, question)
	config := BuildAskerConfig()

	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", poiscout.Errorf(poiscout.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildAskerConfig returns the GenerateContentConfig for asker calls.
func BuildAskerConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful travel assistant answering questions about Points of Interest discovered on a website. Answer based only on the POIs provided. If the answer is not in the POIs, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildAskerPrompt builds the user prompt containing the POIs and the
// question.
func BuildAskerPrompt(pois []*poiscout.POIRecord, question string) string {
	var sb strings.Builder
	sb.WriteString("<pois>\n")
	for i, poi := range pois {
		sb.WriteString("<poi>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<name>%s</name>\n", poi.Name)
		if poi.Category != "" {
			fmt.Fprintf(&sb, "<category>%s</category>\n", poi.Category)
		}
		if poi.Location != "" {
			fmt.Fprintf(&sb, "<location>%s</location>\n", poi.Location)
		}
		fmt.Fprintf(&sb, "<description>%s</description>\n", poi.Description)
		sb.WriteString("</poi>\n")
	}
	sb.WriteString("</pois>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
