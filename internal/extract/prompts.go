package extract

import "github.com/abhisek/snapsolve/internal/llm"

const multiQuestionPrompt = `Analyze this image and extract ALL questions visible. For each question, return ONLY valid JSON array (no markdown, no extra text):

[
  {
    "question_number": "27",
    "subject": "physics",
    "topic": "electricity",
    "question_text": "complete question text",
    "equations": ["LaTeX equation if any"],
    "options": {
      "A": "option A text",
      "B": "option B text",
      "C": "option C text",
      "D": "option D text"
    },
    "difficulty": "medium",
    "keywords": ["keyword1", "keyword2"]
  },
  ... (more questions)
]

CRITICAL INSTRUCTIONS:
- Extract EVERY question you see in the image
- Include question numbers (e.g., "27", "28", "29")
- Extract ALL option texts completely and accurately
- Include scientific notation and equations in LaTeX
- Classify subject accurately (math/physics/chemistry)
- Return ONLY the JSON array, nothing else
- If equations use special symbols, convert to LaTeX`

const singleQuestionPrompt = `Extract the FIRST visible question. Return ONLY valid JSON:

{
  "question_number": "number or null",
  "subject": "math or physics or chemistry",
  "topic": "specific topic",
  "question_text": "complete question",
  "equations": ["equations if any"],
  "options": {"A": "...", "B": "...", "C": "...", "D": "..."},
  "difficulty": "easy/medium/hard",
  "keywords": ["keyword1", "keyword2"]
}`

// questionSchema vets the shape of a single extracted record before it
// is decoded. Subject is deliberately unconstrained here: unknown values
// are normalized to math rather than rejected.
var questionSchema = &llm.Schema{
	Name:        "extracted-question",
	Description: "one multiple-choice question extracted from an image",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_text": map[string]any{"type": "string"},
			"options":       map[string]any{"type": "object"},
		},
		"required": []any{"question_text", "options"},
	},
}
