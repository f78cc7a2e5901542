package stream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tripplanner/internal/stream"
)

func TestExtractSuggestions_TaggedBlock(t *testing.T) {
	clean, sugg := stream.ExtractSuggestions(
		"Kyoto fits your budget.\n\n<suggestions>[\"How do I get a JR pass?\", \"Best ryokan?\"]</suggestions>")
	assert.Equal(t, "Kyoto fits your budget.", clean)
	assert.Equal(t, []string{"How do I get a JR pass?", "Best ryokan?"}, sugg)
}

func TestExtractSuggestions_LabelledLine(t *testing.T) {
	clean, sugg := stream.ExtractSuggestions(
		"Here is the plan.\n\nSuggestions: [\"Add a day trip?\"]")
	assert.Equal(t, "Here is the plan.", clean)
	assert.Equal(t, []string{"Add a day trip?"}, sugg)
}

func TestExtractSuggestions_BareTrailingList(t *testing.T) {
	clean, sugg := stream.ExtractSuggestions(
		"Done.\n[\"Try the night market\", \"Visit in spring\"]")
	assert.Equal(t, "Done.", clean)
	assert.Equal(t, []string{"Try the night market", "Visit in spring"}, sugg)
}

func TestExtractSuggestions_Absent(t *testing.T) {
	clean, sugg := stream.ExtractSuggestions("Just a normal answer.")
	assert.Equal(t, "Just a normal answer.", clean)
	assert.NotNil(t, sugg)
	assert.Empty(t, sugg)
}

func TestExtractSuggestions_MalformedBlock(t *testing.T) {
	clean, sugg := stream.ExtractSuggestions(
		"Answer.\n<suggestions>[not json]</suggestions>")
	assert.Contains(t, clean, "Answer.")
	assert.Empty(t, sugg)
}

func TestExtractSuggestions_EmptyList(t *testing.T) {
	clean, sugg := stream.ExtractSuggestions("Answer.\n<suggestions>[]</suggestions>")
	assert.Equal(t, "Answer.", clean)
	assert.NotNil(t, sugg)
	assert.Empty(t, sugg)
}
