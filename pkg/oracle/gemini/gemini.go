// Package gemini adapts Google's Gemini API to the oracle contracts, using
// structured JSON output for room pairing and item similarity scoring.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/GregoryLi360/ciridae-takehome/pkg/errors"
	"github.com/GregoryLi360/ciridae-takehome/pkg/estimate"
	"github.com/GregoryLi360/ciridae-takehome/pkg/oracle"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

const roomPairingPrompt = `You are comparing two construction repair estimates for the same property.
Match rooms from the source estimate to rooms from the counterpart estimate.

Rules:
- Pair rooms that refer to the same physical space (e.g. "Bathroom" and "Hall Bathroom", "Bedroom 1" and "Bedroom").
- Each room appears in exactly one pair. A pair has one source room and one counterpart room.
- If a room has no match on the other side, include it alone with an empty string for the missing side.
- Use exact room names as provided. Do not rename them.`

const scoringPrompt = `You are comparing line items from two construction repair estimates for the same job.
For every source/counterpart item pair, rate how likely the two items describe the same work on a 0.0 to 1.0 scale.

Guidance:
- 1.0 means clearly the same work even if wording differs.
- Score the same type of work highly even when methodology or materials differ, e.g. "Mortar bed for tile floors" and "Floor leveling cement" both prepare floors for tile.
- Ignore quantity and pricing differences entirely; only the described work matters.
- 0.0 means no plausible relation.
Return a matrix with one row per source item and one column per counterpart item.`

// Client calls Gemini for room pairing and similarity scoring. It
// implements oracle.RoomPairer and oracle.Scorer.
type Client struct {
	genai *genai.Client
	model string
}

// Option configures a Client.
type Option func(*options)

type options struct {
	apiKey string
	model  string
}

// WithAPIKey sets the API key explicitly instead of reading it from the
// environment.
func WithAPIKey(key string) Option {
	return func(o *options) { o.apiKey = key }
}

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(o *options) { o.model = model }
}

// New creates a Gemini-backed oracle client. The API key comes from
// WithAPIKey or the GEMINI_API_KEY / GOOGLE_API_KEY environment variables.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.apiKey == "" {
		o.apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if o.apiKey == "" {
		o.apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if o.apiKey == "" {
		return nil, errors.ErrAPIKeyRequired
	}
	if o.model == "" {
		o.model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  o.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Client{genai: client, model: o.model}, nil
}

type roomGroup struct {
	Source      string `json:"source"`
	Counterpart string `json:"counterpart"`
}

type roomMapping struct {
	Groups []roomGroup `json:"groups"`
}

// PairRooms implements oracle.RoomPairer.
func (c *Client) PairRooms(ctx context.Context, source, counterpart []string) ([]oracle.RoomPairing, error) {
	user := fmt.Sprintf("Source rooms: %s\nCounterpart rooms: %s",
		formatList(source), formatList(counterpart))

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"groups": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"source":      {Type: genai.TypeString},
						"counterpart": {Type: genai.TypeString},
					},
					Required: []string{"source", "counterpart"},
				},
			},
		},
		Required: []string{"groups"},
	}

	var mapping roomMapping
	if err := c.generate(ctx, roomPairingPrompt, user, schema, &mapping); err != nil {
		return nil, errors.WrapOracle("gemini", "pair-rooms", err)
	}

	pairings := make([]oracle.RoomPairing, 0, len(mapping.Groups))
	for _, g := range mapping.Groups {
		pairings = append(pairings, oracle.RoomPairing{
			Source:      g.Source,
			Counterpart: g.Counterpart,
		})
	}
	return pairings, nil
}

type scoreMatrix struct {
	Scores [][]float64 `json:"scores"`
}

// Score implements oracle.Scorer.
func (c *Client) Score(ctx context.Context, source, counterpart []estimate.LineItem) ([][]float64, error) {
	var sb strings.Builder
	sb.WriteString("Source items:\n")
	writeItems(&sb, source)
	sb.WriteString("Counterpart items:\n")
	writeItems(&sb, counterpart)

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"scores": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeNumber},
				},
			},
		},
		Required: []string{"scores"},
	}

	var matrix scoreMatrix
	if err := c.generate(ctx, scoringPrompt, sb.String(), schema, &matrix); err != nil {
		return nil, errors.WrapOracle("gemini", "score-items", err)
	}
	return matrix.Scores, nil
}

// generate runs one structured-output completion and decodes the JSON
// response into out.
func (c *Client) generate(ctx context.Context, system, user string, schema *genai.Schema, out any) error {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(user), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schema,
	})
	if err != nil {
		return err
	}
	text := resp.Text()
	if text == "" {
		return fmt.Errorf("empty response from model %s", c.model)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("decoding model response: %w", err)
	}
	return nil
}

func formatList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// writeItems renders items as numbered lines so the model can reference
// them positionally.
func writeItems(sb *strings.Builder, items []estimate.LineItem) {
	for i, item := range items {
		fmt.Fprintf(sb, "[%d] %s", i, item.Description)
		if item.Quantity.Present() || item.Unit != "" {
			fmt.Fprintf(sb, " (%s %s)", item.Quantity.String(), item.Unit)
		}
		sb.WriteString("\n")
	}
}
