package llm

import (
	"fmt"
	"strings"

	"studyhub/internal/domain"
)

// Material text beyond this many runes is cut before prompting.
const maxMaterialRunes = 30000

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func summaryPrompt(title, text string) string {
	return fmt.Sprintf(`You are an expert educational summarizer. Create a clear, well-structured summary of the study material titled "%s".

Requirements:
- Start with a one-paragraph overview of the main topic.
- Cover every key concept, definition and relationship a student needs for revision.
- Use short headings and bullet points.
- Do not invent facts that are not in the material.

Study material:
%s`, title, truncateRunes(text, maxMaterialRunes))
}

func typeGuidance(t domain.QuestionType) string {
	switch t {
	case domain.QuestionTypeMultipleChoice:
		return `Every question is "multiple-choice": give exactly 4 options and set correctAnswer to the full text of the correct option.`
	case domain.QuestionTypeTrueFalse:
		return `Every question is "true-false": omit options and set correctAnswer to exactly "True" or "False".`
	case domain.QuestionTypeFillBlank:
		return `Every question is "fill-blank": write the sentence with "____" where the missing term goes, omit options, and set correctAnswer to the missing term.`
	case domain.QuestionTypeShortAnswer:
		return `Every question is "short-answer": omit options and set correctAnswer to a concise model answer of one or two sentences.`
	default:
		return `Mix "multiple-choice", "true-false", "fill-blank" and "short-answer" questions. Multiple-choice questions have exactly 4 options; true-false answers are exactly "True" or "False"; fill-blank questions use "____" for the missing term.`
	}
}

func quizPrompt(req domain.QuestionGenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert educational quiz creator. Based on the study material titled %q, create exactly %d questions at %s difficulty.\n\n",
		req.Title, req.Count, req.Difficulty)
	b.WriteString(typeGuidance(req.QuestionType))
	b.WriteString(`

Respond with ONLY a JSON array. Each element must have this shape:
{
  "questionText": "the question",
  "questionType": "multiple-choice | true-false | fill-blank | short-answer",
  "options": ["only", "for", "multiple", "choice"],
  "correctAnswer": "the correct answer",
  "explanation": "why the answer is correct"
}

Study material:
`)
	b.WriteString(truncateRunes(req.Text, maxMaterialRunes))
	return b.String()
}

func shortAnswerPrompt(questionText, expected, submitted string) string {
	return fmt.Sprintf(`You are grading a student's answer to a study question. Judge whether the student's answer expresses the same meaning as the expected answer. Wording does not need to match.

Question: %s
Expected answer: %s
Student's answer: %s

Reply with exactly one word: "correct" or "incorrect".`, questionText, expected, submitted)
}
