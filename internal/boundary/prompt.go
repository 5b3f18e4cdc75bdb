package boundary

import (
	"bytes"
	"encoding/json"
	"text/template"
)

type simplifiedMessage struct {
	BubbleID  string `json:"bubbleId"`
	Speaker   string `json:"speaker"`
	Timestamp int64  `json:"timestamp"`
	Preview   string `json:"preview"`
}

type promptData struct {
	Messages        string
	Commit          string
	PreviousCommit  string
	PreviousJournal string
}

var boundaryPromptTemplate = template.Must(template.New("boundary").Parse(`You are identifying which message begins the conversation relevant to a specific git commit.

Task: review the candidate chat messages below (oldest to newest) and return the bubbleId of the single message where this commit's relevant conversation begins. Everything from that message to the end of the list is considered part of the commit's conversation.

Respond with a JSON object and nothing else, matching exactly this shape:
{"bubbleId": "<id of the boundary message>", "confidence": <integer 1-10>, "reasoning": "<short explanation>"}

Confidence rubric: 10 means certain, the conversation clearly starts at this message (e.g. a new topic, or a message explicitly referencing starting this change); 1 means a guess with no strong signal.

Candidate messages (JSON array, oldest first):
{{.Messages}}

Current commit:
{{.Commit}}
{{if .PreviousCommit}}
Previous commit:
{{.PreviousCommit}}
{{end}}{{if .PreviousJournal}}
Previous journal entry:
{{.PreviousJournal}}
{{end}}`))

func buildPrompt(simplified []simplifiedMessage, in Input) (string, error) {
	messagesJSON, err := json.MarshalIndent(simplified, "", "  ")
	if err != nil {
		return "", err
	}
	commitJSON, err := json.MarshalIndent(in.Commit, "", "  ")
	if err != nil {
		return "", err
	}

	data := promptData{
		Messages:        string(messagesJSON),
		Commit:          string(commitJSON),
		PreviousJournal: in.PreviousJournal,
	}
	if in.PreviousCommit != nil {
		prevJSON, err := json.MarshalIndent(in.PreviousCommit, "", "  ")
		if err != nil {
			return "", err
		}
		data.PreviousCommit = string(prevJSON)
	}

	var buf bytes.Buffer
	if err := boundaryPromptTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
