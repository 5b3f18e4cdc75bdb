package journal

import "strings"

// render produces the section blocks for one entry, in the fixed order
// spec.md §6 lists: Summary, Technical Synopsis, Accomplishments,
// Frustrations or Roadblocks, Tone/Mood, Discussion Notes (from chat),
// Commit Metadata. Lists are hyphen-bulleted; Tone/Mood is two blockquote
// lines (mood, then indicators); Discussion Notes use
// "> **Speaker:** text" for attributed lines and "> text" otherwise.
func render(s Sections, includeChat, includeMood bool) string {
	var b strings.Builder

	writeSection(&b, "Summary", s.Summary)
	writeSection(&b, "Technical Synopsis", s.TechnicalSynopsis)
	writeListSection(&b, "Accomplishments", s.Accomplishments)
	writeListSection(&b, "Frustrations or Roadblocks", s.Frustrations)

	if includeMood && (s.Mood != "" || s.MoodIndicators != "") {
		b.WriteString("#### Tone/Mood\n\n")
		b.WriteString("> " + s.Mood + "\n")
		b.WriteString("> " + s.MoodIndicators + "\n\n")
	}

	if includeChat && len(s.Discussion) > 0 {
		b.WriteString("#### Discussion Notes (from chat)\n\n")
		for _, line := range s.Discussion {
			if line.Speaker != "" {
				b.WriteString("> **" + line.Speaker + ":** " + line.Text + "\n")
			} else {
				b.WriteString("> " + line.Text + "\n")
			}
		}
		b.WriteString("\n")
	}

	writeSection(&b, "Commit Metadata", s.CommitMetadata)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeSection(b *strings.Builder, name, content string) {
	if content == "" {
		return
	}
	b.WriteString("#### " + name + "\n\n")
	b.WriteString(content)
	b.WriteString("\n\n")
}

func writeListSection(b *strings.Builder, name string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("#### " + name + "\n\n")
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
	b.WriteString("\n")
}
