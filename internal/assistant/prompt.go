package assistant

import (
	"strings"

	"github.com/minjae/job-coach/internal/prompts"
	"github.com/minjae/job-coach/internal/types"
)

// RenderFeedbackPrompt renders one feedback request into the single
// message appended to the session thread. The output is deterministic:
// identical requests produce byte-identical prompts. Empty fields are
// rendered with an empty value rather than omitted; the assistant's
// instructions tell it to skip empty evaluation axes.
func RenderFeedbackPrompt(req types.FeedbackRequest) string {
	var sb strings.Builder

	writeLabeled(&sb, "회사", req.Company)
	writeLabeled(&sb, "직무", req.Position)
	writeLabeled(&sb, "자격요건", req.Qualifications)
	writeLabeled(&sb, "필수사항", req.Requirements)
	writeLabeled(&sb, "수행업무", req.Duties)
	writeLabeled(&sb, "우대사항", req.Preferred)
	writeLabeled(&sb, "인재상", req.Ideal)

	sb.WriteString("\n지원자 답변 정보\n")
	writeLabeled(&sb, "질문", req.Question)
	writeLabeled(&sb, "답변", req.Answer)

	sb.WriteString("\n")
	sb.WriteString(prompts.MustGet("assistant.json", "feedback_suffix"))
	sb.WriteString("\n")

	return sb.String()
}

func writeLabeled(sb *strings.Builder, label, value string) {
	sb.WriteString("- ")
	sb.WriteString(label)
	sb.WriteString(": ")
	sb.WriteString(value)
	sb.WriteString("\n")
}
