package common_test

import (
	"encoding/json"
	"testing"

	"bennypowers.dev/abbrex/internal/parser/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntaxString(t *testing.T) {
	assert.Equal(t, "none", common.None.String())
	assert.Equal(t, "markup", common.Markup.String())
	assert.Equal(t, "stylesheet", common.Stylesheet.String())
	assert.Equal(t, "none", common.Syntax(42).String())
}

func TestContextJSON(t *testing.T) {
	data, err := json.Marshal(common.Context{
		Syntax:   common.Stylesheet,
		Language: "css",
		Value:    true,
		Property: "color",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"syntax":"stylesheet","language":"css","value":true,"property":"color"}`, string(data))
}
