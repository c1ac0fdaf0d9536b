package tips

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a career coach helping job seekers prepare for applications and interviews. You give brief, concrete, point-wise advice.`

func sprintfRole(format, role string) string {
	return fmt.Sprintf(format, role)
}

func buildUserMessage(k Kind, role string) string {
	var b strings.Builder

	what := "resume"
	if k == KindInterview {
		what = "interview"
	}
	fmt.Fprintf(&b, "Provide brief, point-wise %s tips for someone applying for a %s position.\n", what, role)

	b.WriteString("\nSections, in this order:\n")
	for _, title := range sectionTitles[k] {
		fmt.Fprintf(&b, "- %s\n", title)
	}
	if k == KindInterview {
		b.WriteString("\nFor Common Questions, write each point as \"<question>: <brief answer tip>\".\n")
	}

	b.WriteString(`
Instructions:
1. Keep all tips together concise, around 150 words in total.
2. Use the section headings exactly as listed. Do not add other sections.
3. Do not include links or resources.
4. Plain text only. No markdown, no emoji.`)

	return b.String()
}
