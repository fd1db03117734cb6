package imagegen

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"
)

const (
	providerNameGoogle = "google"
	defaultImageModel  = "gemini-3-pro-image-preview"
	mimeTypeJPEG       = "image/jpeg"

	// Gemini accepts at most this many reference images per request
	maxInspirationImages = 6

	removalTemperature    = 0.3
	generationTemperature = 0.7
)

// GoogleProvider implements the Provider interface using Gemini image
// generation through the GenAI API
type GoogleProvider struct {
	client *genai.Client
	model  string
}

// NewGoogleProvider creates a new Google image provider
func NewGoogleProvider(ctx context.Context, apiKey string) (*GoogleProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Google image client: %w", err)
	}

	return &GoogleProvider{
		client: client,
		model:  defaultImageModel,
	}, nil
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return providerNameGoogle
}

// Generate runs one image-to-image edit for a preference source
func (p *GoogleProvider) Generate(ctx context.Context, request *Request) (*Response, error) {
	startTime := time.Now()
	log.Printf("🎨 GOOGLE IMAGE REQUEST STARTED (source: %s, model: %s)", request.Source, p.model)

	transaction := sentry.StartTransaction(ctx, "google.generate_image")
	defer transaction.Finish()

	transaction.SetTag("model", p.model)
	transaction.SetTag("provider", providerNameGoogle)
	transaction.SetTag("source", string(request.Source))

	contents := p.buildContents(request)

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
		Temperature:        genai.Ptr(float32(temperatureFor(request.Prompt))),
	}
	if request.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: request.SystemInstruction}},
		}
	}

	span := transaction.StartChild("google.api_call")
	apiStartTime := time.Now()
	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	apiDuration := time.Since(apiStartTime)
	span.Finish()

	if err != nil {
		log.Printf("❌ GOOGLE IMAGE REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		if !IsRetryable(err) {
			sentry.CaptureException(err)
		}
		return nil, fmt.Errorf("google image request failed: %w", err)
	}

	log.Printf("⏱️  GOOGLE IMAGE API CALL COMPLETED in %v", apiDuration)

	image, mimeType, err := extractImage(result)
	if err != nil {
		transaction.SetTag("success", "false")
		return nil, err
	}

	transaction.SetTag("success", "true")
	log.Printf("✅ GOOGLE IMAGE GENERATION COMPLETED in %v (bytes: %d)", time.Since(startTime), len(image))

	return &Response{
		Image:          image,
		MimeType:       mimeType,
		Model:          p.model,
		ProcessingTime: time.Since(startTime),
	}, nil
}

// buildContents assembles the multimodal request: base room photo first,
// inspiration references next, text prompt last
func (p *GoogleProvider) buildContents(request *Request) []*genai.Content {
	var parts []*genai.Part

	if len(request.BaseImage) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: mimeTypeJPEG,
				Data:     request.BaseImage,
			},
		})
	}

	inspiration := request.InspirationImages
	if len(inspiration) > maxInspirationImages {
		inspiration = inspiration[:maxInspirationImages]
	}
	for _, img := range inspiration {
		if len(img) == 0 {
			continue
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: mimeTypeJPEG,
				Data:     img,
			},
		})
	}

	parts = append(parts, &genai.Part{Text: request.Prompt})

	return []*genai.Content{{
		Role:  "user",
		Parts: parts,
	}}
}

// temperatureFor lowers the temperature for furniture removal prompts,
// which need strict adherence to the deletion instructions
func temperatureFor(prompt string) float64 {
	if strings.Contains(prompt, "EMPTY ARCHITECTURAL SHELL") ||
		strings.Contains(prompt, "Remove EVERYTHING") ||
		strings.Contains(prompt, "empty room") ||
		strings.Contains(prompt, "bare room") {
		return removalTemperature
	}
	return generationTemperature
}

// extractImage pulls the first inline image part out of the response
func extractImage(result *genai.GenerateContentResponse) ([]byte, string, error) {
	if len(result.Candidates) == 0 {
		return nil, "", ErrNoImage
	}
	candidate := result.Candidates[0]
	if candidate.Content == nil {
		return nil, "", ErrNoImage
	}
	for _, part := range candidate.Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = mimeTypeJPEG
			}
			return part.InlineData.Data, mimeType, nil
		}
	}
	return nil, "", ErrNoImage
}
