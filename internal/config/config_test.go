package config_test

import (
	"errors"
	"path/filepath"
	"testing"

	"bennypowers.dev/abbrex/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())

	ctx := cfg.RolloutContext()
	assert.Equal(t, '$', ctx.NumberingGlyph)
	assert.Equal(t, "$#", ctx.OutputPlaceholder)
	assert.Equal(t, 1000, ctx.MaxRepeat)
	assert.Contains(t, ctx.InlineElements, "a")

	units := cfg.UnitOptions()
	assert.Equal(t, "px", units.IntUnit)
	assert.Equal(t, "em", units.FloatUnit)
	assert.Equal(t, "%", units.Aliases["p"])

	assert.Equal(t, "en", cfg.ParseOptions().Variables["lang"])
}

func TestLoadYAML(t *testing.T) {
	cfg, err := config.Load("testdata/abbrex.yaml")
	require.NoError(t, err)

	assert.Equal(t, '#', cfg.RolloutContext().NumberingGlyph)
	assert.Equal(t, 50, cfg.Markup.MaxRepeat)
	assert.Equal(t, []string{"span", "em"}, cfg.RolloutContext().InlineElements, "lists replace the defaults")
	assert.Equal(t, "$#", cfg.Markup.OutputPlaceholder, "unset values keep their defaults")
	assert.Equal(t, "de", cfg.Markup.Variables["lang"])
	assert.Equal(t, "UTF-8", cfg.Markup.Variables["charset"], "maps are merged with the defaults")
	assert.Equal(t, "rem", cfg.Stylesheet.IntUnit)
	assert.False(t, cfg.Stylesheet.ShortHex)
	assert.Equal(t, filepath.Join("testdata", "snippets.yaml"), cfg.Snippets)

	lang, ok := cfg.LanguageFor("templates/page.njk")
	require.True(t, ok)
	assert.Equal(t, "html", lang)
}

func TestLoadJSONC(t *testing.T) {
	cfg, err := config.Load("testdata/abbrex.jsonc")
	require.NoError(t, err)

	assert.Equal(t, "rem", cfg.Stylesheet.FloatUnit)
	assert.Equal(t, []string{"z-index", "opacity"}, cfg.Stylesheet.Unitless)
	assert.Equal(t, "|", cfg.RolloutContext().OutputPlaceholder)
	assert.Equal(t, "px", cfg.Stylesheet.IntUnit)
}

func TestLoadErrors(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		_, err := config.Load("testdata/invalid.yaml")
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)

		var verr *config.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Len(t, verr.Fields, 2)
		assert.Contains(t, err.Error(), "NumberingGlyph")
		assert.Contains(t, err.Error(), "MaxRepeat")
	})

	t.Run("bad glob", func(t *testing.T) {
		_, err := config.Load("testdata/bad-glob.json")
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := config.Parse([]byte("a = 1"), ".toml")
		assert.ErrorIs(t, err, config.ErrUnsupportedFormat)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := config.Parse([]byte("markup: [\n"), ".yaml")
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load("testdata/missing.yaml")
		assert.Error(t, err)
	})
}

func TestLanguageFor(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Languages["src/legacy/**/*.js"] = "html"

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"index.html", "html", true},
		{"components/card.vue", "html", true},
		{"styles/site.scss", "css", true},
		{"src/app.tsx", "javascriptreact", true},
		{"src/app.js", "javascript", true},
		{"src/legacy/old/app.js", "html", true},
		{"README.md", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := cfg.LanguageFor(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
