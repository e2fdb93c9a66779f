package card

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/nfnt/resize"

	"github.com/hungercard/backend/internal/entity"
	"github.com/hungercard/backend/pkg/storage"
	"github.com/hungercard/backend/pkg/xcontext"
)

const (
	cardWidth  = 600
	cardHeight = 400

	thumbnailWidth = 150
)

type Input struct {
	App       *entity.Application
	Score     int
	Breakdown []entity.BreakdownLine
}

// Output is the renderable artifact of one application. Metadata carries no
// image field, the orchestrator fills it in after the image is pinned.
type Output struct {
	Image     []byte
	Thumbnail []byte
	Metadata  map[string]any
	Prompt    string
	Theme     string
}

type Generator interface {
	Generate(ctx context.Context, input Input) (*Output, error)
}

type cardGenerator struct {
	storage storage.Storage
}

func NewCardGenerator(storage storage.Storage) *cardGenerator {
	return &cardGenerator{storage: storage}
}

func (g *cardGenerator) Generate(ctx context.Context, input Input) (*Output, error) {
	theme := themeOf(input.Score)

	imageData, err := g.render(theme, input)
	if err != nil {
		return nil, err
	}

	thumbnail, err := g.thumbnail(imageData)
	if err != nil {
		return nil, err
	}

	// The archive copy is a convenience for support staff, losing it never
	// fails an approval.
	g.archive(ctx, input.App.Username, imageData)

	return &Output{
		Image:     imageData,
		Thumbnail: thumbnail,
		Metadata:  g.metadata(theme, input),
		Prompt:    fmt.Sprintf("%s benefit card for %s, score %d", theme.name, input.App.Username, input.Score),
		Theme:     theme.name,
	}, nil
}

func (g *cardGenerator) metadata(theme theme, input Input) map[string]any {
	attributes := []map[string]any{
		{"trait_type": "Username", "value": input.App.Username},
		{"trait_type": "Score", "value": input.Score},
		{"trait_type": "Theme", "value": theme.name},
		{"trait_type": "Badges", "value": len(input.Breakdown)},
	}

	for _, line := range input.Breakdown {
		attributes = append(attributes, map[string]any{
			"trait_type": line.Name,
			"value":      line.Points,
		})
	}

	socials := []struct {
		name  string
		value string
	}{
		{"Twitter", input.App.Twitter},
		{"Discord", input.App.Discord},
		{"Telegram", input.App.Telegram},
		{"Github", input.App.Github},
	}
	for _, social := range socials {
		if social.value != "" {
			attributes = append(attributes, map[string]any{
				"trait_type": social.name,
				"value":      "connected",
			})
		}
	}

	return map[string]any{
		"name":        fmt.Sprintf("Hunger Card of %s", input.App.Username),
		"description": fmt.Sprintf("Benefit card with a hunger score of %d", input.Score),
		"attributes":  attributes,
	}
}

// render draws the card as flat geometry: themed background, an accent
// header bar, a score bar and one marker square per badge.
func (g *cardGenerator) render(theme theme, input Input) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(theme.background), image.Point{}, draw.Src)

	header := image.Rect(0, 0, cardWidth, 80)
	draw.Draw(img, header, image.NewUniform(theme.accent), image.Point{}, draw.Src)

	scoreWidth := input.Score
	if scoreWidth > cardWidth-80 {
		scoreWidth = cardWidth - 80
	}
	scoreBar := image.Rect(40, 180, 40+scoreWidth, 210)
	draw.Draw(img, scoreBar, image.NewUniform(theme.accent), image.Point{}, draw.Src)

	for i := range input.Breakdown {
		x := 40 + i*30
		if x+20 > cardWidth-40 {
			break
		}

		marker := image.Rect(x, 300, x+20, 320)
		draw.Draw(img, marker, image.NewUniform(theme.marker), image.Point{}, draw.Src)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (g *cardGenerator) thumbnail(imageData []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, err
	}

	small := resize.Resize(thumbnailWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, small); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (g *cardGenerator) archive(ctx context.Context, username string, imageData []byte) {
	if g.storage == nil {
		return
	}

	_, err := g.storage.Upload(ctx, &storage.UploadObject{
		Bucket:   xcontext.Configs(ctx).Card.ArchiveBucket,
		Prefix:   "cards",
		FileName: fmt.Sprintf("%s.png", username),
		Mime:     "image/png",
		Data:     imageData,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot archive card of %s: %v", username, err)
	}
}

type theme struct {
	name       string
	background color.RGBA
	accent     color.RGBA
	marker     color.RGBA
}

// themeOf picks the palette from the score tier, the same score always gives
// the same card.
func themeOf(score int) theme {
	switch {
	case score >= 200:
		return theme{
			name:       "gold",
			background: color.RGBA{R: 0x2b, G: 0x21, B: 0x0a, A: 0xff},
			accent:     color.RGBA{R: 0xd4, G: 0xaf, B: 0x37, A: 0xff},
			marker:     color.RGBA{R: 0xff, G: 0xe9, B: 0xa8, A: 0xff},
		}
	case score >= 100:
		return theme{
			name:       "silver",
			background: color.RGBA{R: 0x1c, G: 0x1f, B: 0x26, A: 0xff},
			accent:     color.RGBA{R: 0xc0, G: 0xc0, B: 0xc8, A: 0xff},
			marker:     color.RGBA{R: 0xe8, G: 0xe8, B: 0xf0, A: 0xff},
		}
	default:
		return theme{
			name:       "bronze",
			background: color.RGBA{R: 0x20, G: 0x16, B: 0x10, A: 0xff},
			accent:     color.RGBA{R: 0xcd, G: 0x7f, B: 0x32, A: 0xff},
			marker:     color.RGBA{R: 0xf0, G: 0xc8, B: 0xa0, A: 0xff},
		}
	}
}
