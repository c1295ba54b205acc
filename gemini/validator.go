package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/poiscout"
	"google.golang.org/genai"
)

// Ensure Validator implements poiscout.Validator at compile time.
var _ poiscout.Validator = (*Validator)(nil)

// Validator implements poiscout.Validator using Google Gemini. The model
// is asked a strict Yes/No question about whether a candidate names a
// specific visitable place; anything but "yes" rejects the candidate.
type Validator struct {
	client *genai.Client
}

// NewValidator creates a new Validator.
func NewValidator(client *genai.Client) *Validator {
	return &Validator{client: client}
}

// Validate asks the model whether the candidate is a real POI.
func (v *Validator) Validate(ctx context.Context, poi poiscout.POI) (*poiscout.Verdict, error) {
	if err := poi.Validate(); err != nil {
		return nil, err
	}

	prompt := BuildValidatorPrompt(poi)
	config := BuildValidatorConfig()

	result, err := v.client.Models.GenerateContent(ctx, model,
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

	return ParseVerdict(poi, result.Text()), nil
}

// BuildValidatorConfig returns the GenerateContentConfig for validator calls.
func BuildValidatorConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: validatorSystemInstruction}},
		},
		Temperature: &temp,
	}
}

const validatorSystemInstruction = `You are a helpful agent. Your task is to determine if a given name qualifies as a Point of Interest (POI).

Definition of a POI:
    A POI is a specific place where people can visit or gather, such as tourist attractions, landmarks, parks, museums, cultural venues, and historic sites.
    General terms that describe activities or broad categories, like "Things to do in Chennai" or "Places to visit in Chennai," are not POIs.

Instructions:
    If the given name is a POI, reply with "Yes".
    If the given name is not a POI, reply with "No".
    Do not provide any response other than "Yes" or "No"; you will be penalized for any additional information.

Examples:
    - name: "Marina Beach", description: "Marina Beach is a natural urban beach in Chennai, Tamil Nadu, India."
    - Your response: "Yes"

    - name: "Explore Chennai", description: "Discover the best places to visit in Chennai."
    - Your response: "No"

    - name: "Kapaleeshwarar Temple", description: "Kapaleeshwarar Temple is a Hindu temple dedicated to Lord Shiva."
    - Your response: "Yes"

    - name: "Best Restaurants in Chennai", description: "Explore the top restaurants in Chennai."
    - Your response: "No"

    - name: "Arignar Anna Zoological Park", description: "Arignar Anna Zoological Park is a zoological garden located in Vandalur, a suburb in the southwestern part of Chennai."
    - Your response: "Yes"

    - name: "Treks in Chennai", description: "Discover the best trekking spots in Chennai."
    - Your response: "No"`

// BuildValidatorPrompt builds the user prompt asking about one candidate.
func BuildValidatorPrompt(poi poiscout.POI) string {
	return fmt.Sprintf(`Please confirm if the below is a Point of Interest (POI).

- name:  %s
- description: %s
`, poi.Name, poi.Description)
}

// ParseVerdict maps the model's raw reply onto a verdict. Only a reply
// of "yes", ignoring case and surrounding whitespace, confirms the
// candidate.
func ParseVerdict(poi poiscout.POI, raw string) *poiscout.Verdict {
	return &poiscout.Verdict{
		IsValid:     strings.EqualFold(strings.TrimSpace(raw), "yes"),
		Name:        poi.Name,
		Description: poi.Description,
		RawResponse: raw,
	}
}
