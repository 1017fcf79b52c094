package ai_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"clearbid/internal/ai"
)

func TestExtractJSONLabeledBlock(t *testing.T) {
	text := "Here are the scores:\n```json\n{\"scores\": []}\n```\nLet me know if you need more."

	payload, err := ai.ExtractJSON(text)
	require.NoError(t, err)
	require.JSONEq(t, `{"scores": []}`, string(payload))
}

func TestExtractJSONAnyBlock(t *testing.T) {
	text := "```\n{\"scores\": [{\"vendor\": \"Acme\", \"score\": 90}]}\n```"

	payload, err := ai.ExtractJSON(text)
	require.NoError(t, err)
	require.JSONEq(t, `{"scores": [{"vendor": "Acme", "score": 90}]}`, string(payload))
}

func TestExtractJSONRawText(t *testing.T) {
	payload, err := ai.ExtractJSON("  {\"scores\": []}  ")
	require.NoError(t, err)
	require.JSONEq(t, `{"scores": []}`, string(payload))
}

func TestExtractJSONLabeledBlockWinsOverPlain(t *testing.T) {
	text := "```\nnot the payload\n```\n```json\n{\"scores\": [1]}\n```"

	payload, err := ai.ExtractJSON(text)
	require.NoError(t, err)
	require.JSONEq(t, `{"scores": [1]}`, string(payload))
}

func TestExtractJSONNoJSONAnywhere(t *testing.T) {
	_, err := ai.ExtractJSON("I cannot score these bids.")
	require.ErrorIs(t, err, ai.ErrNoJSON)
}

func TestExtractJSONInvalidFenceContent(t *testing.T) {
	_, err := ai.ExtractJSON("```\nnot json at all\n```")
	require.ErrorIs(t, err, ai.ErrNoJSON)
}
