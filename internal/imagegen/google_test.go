package imagegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/AkademiaSztuki/awa-api/internal/synthesis"
)

func TestBuildContentsOrdering(t *testing.T) {
	p := &GoogleProvider{model: defaultImageModel}

	request := &Request{
		Source:            synthesis.SourceImplicit,
		Prompt:            "A living room in scandinavian style.",
		BaseImage:         []byte("base"),
		InspirationImages: [][]byte{[]byte("insp1"), nil, []byte("insp2")},
	}

	contents := p.buildContents(request)
	require.Len(t, contents, 1)
	parts := contents[0].Parts

	// base image, two non-empty inspiration images, then the prompt text
	require.Len(t, parts, 4)
	assert.Equal(t, []byte("base"), parts[0].InlineData.Data)
	assert.Equal(t, mimeTypeJPEG, parts[0].InlineData.MIMEType)
	assert.Equal(t, []byte("insp1"), parts[1].InlineData.Data)
	assert.Equal(t, []byte("insp2"), parts[2].InlineData.Data)
	assert.Equal(t, request.Prompt, parts[3].Text)
	assert.Equal(t, "user", contents[0].Role)
}

func TestBuildContentsCapsInspirationImages(t *testing.T) {
	p := &GoogleProvider{model: defaultImageModel}

	var inspiration [][]byte
	for i := 0; i < 10; i++ {
		inspiration = append(inspiration, []byte{byte(i)})
	}

	contents := p.buildContents(&Request{
		Prompt:            "prompt",
		InspirationImages: inspiration,
	})

	// 6 inspiration images + text part, no base image
	assert.Len(t, contents[0].Parts, maxInspirationImages+1)
}

func TestExtractImage(t *testing.T) {
	image, mimeType, err := extractImage(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{
					{Text: "some commentary"},
					{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("pixels")}},
				},
			},
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, []byte("pixels"), image)
	assert.Equal(t, "image/png", mimeType)
}

func TestExtractImageDefaultsMimeType(t *testing.T) {
	_, mimeType, err := extractImage(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{
					{InlineData: &genai.Blob{Data: []byte("pixels")}},
				},
			},
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, mimeTypeJPEG, mimeType)
}

func TestExtractImageEmptyResponse(t *testing.T) {
	_, _, err := extractImage(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, ErrNoImage)

	_, _, err = extractImage(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{Text: "no image here"}},
			},
		}},
	})
	assert.ErrorIs(t, err, ErrNoImage)
}
