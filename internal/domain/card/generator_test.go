package card

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hungercard/backend/internal/entity"
)

func Test_Generate(t *testing.T) {
	generator := NewCardGenerator(nil)

	input := Input{
		App:   &entity.Application{Username: "alice", Twitter: "alice"},
		Score: 230,
		Breakdown: []entity.BreakdownLine{
			{Category: "social", Name: entity.RuleTwitterConnected, Points: 30},
			{Category: "wallet", Name: entity.RuleEthBalanceTier1, Points: 200},
		},
	}

	output, err := generator.Generate(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, "gold", output.Theme)

	img, err := png.Decode(bytes.NewReader(output.Image))
	require.NoError(t, err)
	require.Equal(t, cardWidth, img.Bounds().Dx())

	thumb, err := png.Decode(bytes.NewReader(output.Thumbnail))
	require.NoError(t, err)
	require.Equal(t, thumbnailWidth, thumb.Bounds().Dx())

	require.Equal(t, "Hunger Card of alice", output.Metadata["name"])
	require.NotContains(t, output.Metadata, "image")

	attributes := output.Metadata["attributes"].([]map[string]any)
	require.Equal(t, "Username", attributes[0]["trait_type"])
	require.Equal(t, 230, attributes[1]["value"])
	require.Equal(t, 2, attributes[3]["value"])

	second, err := generator.Generate(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, output.Metadata, second.Metadata)
	require.Equal(t, output.Image, second.Image)
}

func Test_ThemeTiers(t *testing.T) {
	require.Equal(t, "bronze", themeOf(0).name)
	require.Equal(t, "silver", themeOf(100).name)
	require.Equal(t, "gold", themeOf(200).name)
}
