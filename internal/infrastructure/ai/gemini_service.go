// Package ai adapts Google Gemini's REST API to the extraction port. The
// adapter uses net/http directly; the payload is small enough that an SDK
// would only add weight.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minatoent/backoffice-api/internal/application/ports"
	"github.com/minatoent/backoffice-api/internal/domain"
	"github.com/minatoent/backoffice-api/internal/domain/identity"
	"github.com/minatoent/backoffice-api/pkg/logger"
)

// Compile-time check that GeminiService implements the extraction port.
var _ ports.ExtractionService = (*GeminiService)(nil)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	// maxImageBytes caps the file we are willing to inline into a request.
	maxImageBytes = 8 << 20

	// systemPrompt pins the model to pure JSON output. responseMimeType
	// application/json removes the need to strip markdown fences.
	systemPrompt = `You read Indian Aadhaar identity card images. Given one side of a card,
return ONLY a JSON object (no extra text) with this exact structure:
{
  "aadhaar_number": "<12 digit number, or empty string if not visible>",
  "name": "<person's full name, or empty string>",
  "address": "<full address text, or empty string>",
  "mobile": "<mobile number, or empty string>",
  "date_of_birth": "<as printed, or empty string>",
  "gender": "<as printed, or empty string>",
  "parent_name": "<father's/husband's name from S/O, D/O, W/O, C/O lines, or empty string>"
}

Rules:
- Transcribe exactly what is printed. Never invent or complete partial values.
- Use an empty string for anything not visible on this side.
- The front side carries name, photo, date of birth, gender and the number.
- The back side carries the address and sometimes the number again.`
)

// GeminiService calls the Gemini REST API to read one card side at a time.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
	log        *logger.Logger
}

// NewGeminiService builds the adapter. model is typically "gemini-2.0-flash".
// An empty apiKey fails each call instead of failing startup, so the rest of
// the app works without AI configured.
func NewGeminiService(apiKey, model string, log *logger.Logger) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second, // network ceiling; the caller sets the real deadline
		},
		log: log,
	}
}

type geminiRequest struct {
	SystemInstruction *geminiContent   `json:"system_instruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"`
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// cardPayload is the JSON we expect back from the model.
type cardPayload struct {
	AadhaarNumber string `json:"aadhaar_number"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	Mobile        string `json:"mobile"`
	DateOfBirth   string `json:"date_of_birth"`
	Gender        string `json:"gender"`
	ParentName    string `json:"parent_name"`
}

// ExtractCardSide sends one card image to Gemini and returns the raw field
// set. One call is one attempt; retries are the caller's decision.
func (s *GeminiService) ExtractCardSide(ctx context.Context, imagePath, side string) (*identity.FieldSet, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY not configured", domain.ErrExtraction)
	}

	img, mime, err := readImage(imagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{
				{Text: "This is the " + side + " side of an Aadhaar card. Extract the fields."},
				{InlineData: &inlineData{MIMEType: mime, Data: base64.StdEncoding.EncodeToString(img)}},
			},
		}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.1,
			MaxOutputTokens:  512,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ai: marshal request: %w", err)
	}

	url := fmt.Sprintf(geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrExtraction, ctx.Err())
		}
		return nil, fmt.Errorf("%w: http call failed: %v", domain.ErrExtraction, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, fmt.Errorf("ai: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("%w: gemini error %d: %s", domain.ErrExtraction, errResp.Error.Code, errResp.Error.Message)
		}
		return nil, fmt.Errorf("%w: gemini HTTP %d", domain.ErrExtraction, resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return nil, fmt.Errorf("ai: decode response: %w", err)
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty model response", domain.ErrExtraction)
	}

	rawJSON := strings.TrimSpace(gemResp.Candidates[0].Content.Parts[0].Text)
	var card cardPayload
	if err := json.Unmarshal([]byte(rawJSON), &card); err != nil {
		return nil, fmt.Errorf("%w: model output is not valid JSON: %v", domain.ErrExtraction, err)
	}

	s.log.Debug().
		Str("side", side).
		Dur("elapsed", time.Since(start)).
		Msg("card side extracted")

	return &identity.FieldSet{
		Source:        side,
		AadhaarNumber: card.AadhaarNumber,
		Name:          card.Name,
		Address:       card.Address,
		Mobile:        card.Mobile,
		DateOfBirth:   card.DateOfBirth,
		Gender:        card.Gender,
		ParentName:    card.ParentName,
	}, nil
}

// readImage loads the file and resolves its MIME type from the extension.
func readImage(path string) ([]byte, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("image not readable: %v", err)
	}
	if info.Size() > maxImageBytes {
		return nil, "", fmt.Errorf("image too large: %d bytes", info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read image: %v", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return data, "image/png", nil
	case ".webp":
		return data, "image/webp", nil
	default:
		return data, "image/jpeg", nil
	}
}
