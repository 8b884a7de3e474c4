package solver

import (
	"fmt"
	"strings"

	"github.com/abhisek/snapsolve/internal/question"
)

// systemPrompt casts the model as a subject-matter professor.
func systemPrompt(q question.Question) string {
	topic := q.Topic
	if topic == "" {
		topic = string(q.Subject)
	}

	return fmt.Sprintf(`You are an expert %s professor with deep knowledge of %s.

Your task is to solve multiple-choice questions with rigorous, step-by-step reasoning. You must:
1. Fully understand what is being asked
2. Apply relevant concepts, formulas, and principles
3. Show detailed calculations
4. Verify your answer against all options
5. Select the single correct option with high confidence

Be thorough, accurate, and precise in your reasoning.`, q.Subject, topic)
}

// userPrompt formats the question and demands the labeled answer format
// the extraction cascade parses.
func userPrompt(q question.Question) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**Question:**\n%s\n", q.Text)

	if len(q.Equations) > 0 {
		b.WriteString("\n**Equations:**\n")
		for _, eq := range q.Equations {
			fmt.Fprintf(&b, "- $%s$\n", eq)
		}
	}

	b.WriteString("\n**Options:**\n")
	for _, l := range question.Letters {
		fmt.Fprintf(&b, "**%s:** %s\n", l, q.Options[l])
	}

	topic := q.Topic
	if topic == "" {
		topic = "General"
	}
	fmt.Fprintf(&b, "\n**Subject:** %s\n**Topic:** %s\n", titleCase(string(q.Subject)), topic)
	if len(q.Keywords) > 0 {
		fmt.Fprintf(&b, "**Keywords:** %s\n", strings.Join(q.Keywords, ", "))
	}

	b.WriteString(`
Solve this systematically:

1. **CONCEPT**: What principle/theorem/concept applies?
2. **APPROACH**: What method will you use to solve?
3. **SOLUTION**: Detailed step-by-step working with calculations
4. **VERIFICATION**: Check your answer against options
5. **ANSWER**: State the correct option letter (A/B/C/D)
6. **CONFIDENCE**: Your confidence level (0-100)%

Use this EXACT format:
CONCEPT: [relevant concept]
APPROACH: [solving method]
SOLUTION: [detailed steps]
VERIFICATION: [check against options]
ANSWER: [A/B/C/D]
CONFIDENCE: [0-100]`)

	return b.String()
}

// verifyPrompt asks for a bare CORRECT/INCORRECT verdict.
func verifyPrompt(q question.Question, proposed string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question: %s\n\nOptions:\n", q.Text)
	for _, l := range question.Letters {
		fmt.Fprintf(&b, "%s: %s\n", l, q.Options[l])
	}
	fmt.Fprintf(&b, "\nProposed Answer: %s\n\n", proposed)
	b.WriteString("Is this answer correct? Respond with ONLY:\nCORRECT or INCORRECT")

	return b.String()
}

// titleCase uppercases the first letter only, enough for subject names.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
