package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/search"
)

func FormatMaterials(materials []*domain.Material, now time.Time) string {
	t := NewTable("ID", "TITLE", "SIZE", "ADDED").
		AlignRight(2).
		Empty("No materials. Add one with: scholar material add TITLE --file notes.txt")
	for _, m := range materials {
		t.Row(
			TruncID(m.ID),
			Truncate(m.Title, 40),
			fmt.Sprintf("%d chars", len([]rune(m.Content))),
			HumanTimestampFrom(m.CreatedAt, now),
		)
	}
	return t.String()
}

func FormatNotes(n *domain.Notes) string {
	var b strings.Builder
	b.WriteString(Header(n.Title) + "\n")
	if n.Summary != "" {
		b.WriteString(n.Summary + "\n")
	}
	if len(n.KeyPoints) > 0 {
		b.WriteString("\n" + Bold("Key points") + "\n")
		for _, k := range n.KeyPoints {
			b.WriteString("  • " + k + "\n")
		}
	}
	for _, sec := range n.Sections {
		b.WriteString("\n" + Bold(sec.Heading) + "\n")
		for _, item := range sec.Bullets {
			b.WriteString("  - " + item + "\n")
		}
	}
	return b.String()
}

func FormatFlashcards(cards []domain.Flashcard) string {
	if len(cards) == 0 {
		return Dim("No flashcards.") + "\n"
	}
	var b strings.Builder
	for i, c := range cards {
		fmt.Fprintf(&b, "%s %s\n", StyleBlue.Render(fmt.Sprintf("%2d.", i+1)), Bold(c.Front))
		fmt.Fprintf(&b, "    %s\n", c.Back)
	}
	return b.String()
}

// FormatQuiz prints questions with lettered options. The answer key is
// only shown when reveal is set.
func FormatQuiz(questions []domain.QuizQuestion, reveal bool) string {
	if len(questions) == 0 {
		return Dim("No questions.") + "\n"
	}
	var b strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&b, "%s %s\n", StyleBlue.Render(fmt.Sprintf("%d.", i+1)), Bold(q.Question))
		for j, opt := range q.Options {
			line := fmt.Sprintf("   %c) %s", 'A'+rune(j), opt)
			if reveal && j == q.AnswerIndex {
				line = StyleGreen.Render(line + "  ✔")
			}
			b.WriteString(line + "\n")
		}
		if reveal && q.Explanation != "" {
			b.WriteString("   " + Dim(q.Explanation) + "\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func FormatStudyPack(p *contract.StudyPack, reveal bool) string {
	var parts []string
	if p.Notes != nil {
		parts = append(parts, FormatNotes(p.Notes))
	}
	if len(p.Flashcards) > 0 {
		parts = append(parts, Header("Flashcards")+"\n"+FormatFlashcards(p.Flashcards))
	}
	if len(p.Quiz) > 0 {
		parts = append(parts, Header("Quiz")+"\n"+FormatQuiz(p.Quiz, reveal))
	}
	return strings.Join(parts, "\n")
}

func FormatHistory(items []*domain.Interaction, now time.Time) string {
	t := NewTable("WHEN", "KIND", "PROVIDER", "PROMPT", "LATENCY", "STATUS").
		AlignRight(4).
		Empty("No history yet.")
	for _, it := range items {
		status := StyleGreen.Render("ok")
		if !it.Success {
			status = StyleRed.Render("failed")
		}
		t.Row(
			HumanTimestampFrom(it.CreatedAt, now),
			string(it.Kind),
			it.Provider,
			Truncate(strings.ReplaceAll(it.Prompt, "\n", " "), 48),
			fmt.Sprintf("%dms", it.LatencyMs),
			status,
		)
	}
	return t.String()
}

func FormatSearchResults(results []search.Result) string {
	if len(results) == 0 {
		return Dim("No results.") + "\n"
	}
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%s %s\n", StyleBlue.Render(fmt.Sprintf("%d.", i+1)), Bold(r.Title))
		fmt.Fprintf(&b, "   %s\n", Dim(r.Link))
		if r.Snippet != "" {
			fmt.Fprintf(&b, "   %s\n", r.Snippet)
		}
	}
	return b.String()
}
