package dto

import (
	"encoding/json"
	"testing"

	"churchhub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionResponse_SnakeCaseKeys(t *testing.T) {
	resp := FromModelToSubmissionResponse(&models.MagazineSubmission{
		ID:     "s1",
		Title:  "Psalm",
		Branch: &models.Branch{Name: "North"},
	}, "<p>hi</p>")

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var keys map[string]any
	require.NoError(t, json.Unmarshal(raw, &keys))

	assert.Equal(t, "<p>hi</p>", keys["content_html"])
	assert.Equal(t, "North", keys["branch_name"])
	assert.NotContains(t, keys, "contentHtml")
}
