package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasdocs/internal/testutil"
	"github.com/erraggy/oasdocs/navigation"
)

func TestSetupNavFlags(t *testing.T) {
	fs, flags := SetupNavFlags()
	assert.Equal(t, FormatText, flags.Format)
	assert.False(t, flags.Quiet)

	require.NoError(t, fs.Parse([]string{"--format", "yaml", "-q", "api.yaml"}))
	assert.Equal(t, FormatYAML, flags.Format)
	assert.True(t, flags.Quiet)
}

func TestHandleNav_NoArgs(t *testing.T) {
	captureStreams(t, nil)
	assert.Error(t, HandleNav([]string{}))
}

func TestHandleNav_InvalidFormat(t *testing.T) {
	captureStreams(t, nil)
	err := HandleNav([]string{"--format", "html", "api.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format 'html'")
}

func TestHandleNav_Text(t *testing.T) {
	out, errOut := captureStreams(t, nil)
	path := testutil.WriteTempFile(t, "openapi.yaml", testutil.SampleSpecYAML)

	require.NoError(t, HandleNav([]string{path}))

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "Sample Full API", lines[0])
	text := out.String()
	assert.Contains(t, text, "Endpoints (6)")
	assert.Contains(t, text, "#get--users--userId-")
	assert.Contains(t, text, "Components (5)")
	assert.Contains(t, text, "#component-NewOrder")

	var getUser string
	for _, l := range lines {
		if strings.Contains(l, "#get--users--userId-") {
			getUser = l
		}
	}
	assert.Equal(t, []string{"GET", "/users/{userId}", "Get", "a", "user", "#get--users--userId-"}, strings.Fields(getUser))

	assert.Contains(t, errOut.String(), "OpenAPI Documentation Navigation")
}

func TestHandleNav_JSON(t *testing.T) {
	out, errOut := captureStreams(t, nil)
	path := testutil.WriteTempFile(t, "openapi.yaml", testutil.SampleSpecYAML)

	require.NoError(t, HandleNav([]string{"--format", "json", "-q", path}))
	assert.Empty(t, errOut.String())

	var model navigation.Model
	require.NoError(t, json.Unmarshal(out.Bytes(), &model))
	assert.Equal(t, "Sample Full API", model.Title)
	require.Len(t, model.Tags, 3)
	assert.Equal(t, "users", model.Tags[0].Name)
	assert.Equal(t, "get--users", model.Tags[0].Endpoints[0].Anchor)
	assert.Len(t, model.Components, 5)
}

func TestHandleNav_YAML(t *testing.T) {
	out, _ := captureStreams(t, strings.NewReader(testutil.Swagger2YAML))

	require.NoError(t, HandleNav([]string{"--format", "yaml", "-q", "-"}))

	var model navigation.Model
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &model))
	assert.Equal(t, "Legacy API", model.Title)
	require.Len(t, model.Tags, 1)
	assert.Equal(t, "items", model.Tags[0].Name)
	require.Len(t, model.Components, 1)
	assert.Equal(t, "Item", model.Components[0].Name)
}
