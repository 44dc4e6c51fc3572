package report

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/videosummary/pkg/videosummary"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumberd = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

// resultToDocx writes the summary, chapters and transcript of res as a styled docx file.
func resultToDocx(title string, res *videosummary.Result, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	if res.IsRaw() {
		addStyledRun(doc.AddParagraph(""), "Service response", true, headingSize(2))
		addPlainLines(doc, prettyJSON(res.Raw))
		return doc.SaveTo(outputPath)
	}

	addRichText(doc.AddParagraph(""), "**File ID:** "+res.FileID)

	if summary := summaryText(res.Summary); summary != "" {
		addStyledRun(doc.AddParagraph(""), "Summary", true, headingSize(2))
		addMarkdown(doc, summary)
	}

	if len(res.Chapters) > 0 {
		addStyledRun(doc.AddParagraph(""), "Chapters", true, headingSize(2))
		if chapters, ok := chapterEntries(res.Chapters); ok {
			for _, ch := range chapters {
				heading := ch.Title
				if ch.Start != "" {
					heading = ch.Start + "  " + heading
				}
				addStyledRun(doc.AddParagraph(""), heading, true, headingSize(3))
				if ch.Body != "" {
					addRichText(doc.AddParagraph(""), ch.Body)
				}
			}
		} else {
			addPlainLines(doc, prettyJSON(res.Chapters))
		}
	}

	if len(res.Transcript) > 0 {
		addStyledRun(doc.AddParagraph(""), "Transcript", true, headingSize(2))
		if lines, ok := transcriptLines(res.Transcript); ok {
			for _, l := range lines {
				p := doc.AddParagraph("")
				p.AddText(l).Font(fontName).Size(fontSize).Color("000000")
			}
		} else {
			addPlainLines(doc, prettyJSON(res.Transcript))
		}
	}

	return doc.SaveTo(outputPath)
}

// addMarkdown converts markdown text to styled paragraphs.
func addMarkdown(doc *docx.RootDoc, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			level := len(m[1])
			p := doc.AddParagraph("")
			addStyledRun(p, m[2], true, headingSize(level+1))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		if reNumberd.MatchString(trimmed) {
			addRichText(doc.AddParagraph(""), trimmed)
			continue
		}

		addRichText(doc.AddParagraph(""), trimmed)
	}
}

func addPlainLines(doc *docx.RootDoc, text string) {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p := doc.AddParagraph("")
		p.AddText(line).Font(fontName).Size(fontSize).Color("000000")
	}
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			clean := cleanMarkdownInline(part)
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			clean := cleanMarkdownInline(matches[i][1])
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
