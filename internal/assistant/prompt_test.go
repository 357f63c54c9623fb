package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minjae/job-coach/internal/types"
)

func sampleRequest() types.FeedbackRequest {
	return types.FeedbackRequest{
		Company:  "Acme",
		Position: "Engineer",
		Duties:   "로봇 제어 소프트웨어 개발",
		Question: "지원동기를 말해주세요.",
		Answer:   "로봇이 좋아서 지원했습니다.",
	}
}

func TestRenderFeedbackPrompt_Deterministic(t *testing.T) {
	req := sampleRequest()

	first := RenderFeedbackPrompt(req)
	second := RenderFeedbackPrompt(req)

	assert.Equal(t, first, second, "identical requests must render byte-identical prompts")
}

func TestRenderFeedbackPrompt_ContainsLabeledFields(t *testing.T) {
	out := RenderFeedbackPrompt(sampleRequest())

	assert.Contains(t, out, "- 회사: Acme\n")
	assert.Contains(t, out, "- 직무: Engineer\n")
	assert.Contains(t, out, "- 질문: 지원동기를 말해주세요.\n")
	assert.Contains(t, out, "- 답변: 로봇이 좋아서 지원했습니다.\n")
}

func TestRenderFeedbackPrompt_EmptyFieldsRenderedNotOmitted(t *testing.T) {
	req := sampleRequest()
	req.Preferred = ""
	out := RenderFeedbackPrompt(req)

	assert.Contains(t, out, "- 우대사항: \n", "an empty axis keeps its labeled line")
}

func TestRenderFeedbackPrompt_OnlyChangedLineDiffers(t *testing.T) {
	base := sampleRequest()
	changed := base
	changed.Preferred = "CI/CD 경험자"

	baseLines := strings.Split(RenderFeedbackPrompt(base), "\n")
	changedLines := strings.Split(RenderFeedbackPrompt(changed), "\n")
	require.Equal(t, len(baseLines), len(changedLines))

	var diffs []string
	for i := range baseLines {
		if baseLines[i] != changedLines[i] {
			diffs = append(diffs, changedLines[i])
		}
	}
	require.Len(t, diffs, 1, "populating one optional field must change exactly one line")
	assert.Equal(t, "- 우대사항: CI/CD 경험자", diffs[0])
}
