// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"text/template"
)

// systemPrompt fixes the model's role for every request.
const systemPrompt = `You are an AI assistant specialized in summarizing academic machine learning papers.
Your task is to create a concise, accurate summary highlighting the key contributions,
methodology, and results. Structure your response in JSON format.`

// userPromptTmpl embeds the paper metadata and (possibly truncated) text and
// requests the exact JSON shape the Summary type expects.
var userPromptTmpl = template.Must(template.New("summarize").Parse(`Please summarize the following machine learning paper:

Title: {{.Title}}
Authors: {{.Authors}}

Content:
{{.Content}}

Format your response as a JSON object with the following fields:
- "title": Title of the paper
- "authors": List of authors
- "summary": A concise summary of the paper (300-500 words)
- "key_points": A list of 3-5 key takeaways
- "methodology": Brief description of the methods used
- "results": Summary of main results
- "implications": Potential implications or applications

Make sure your response is valid JSON.`))

// renderUserPrompt executes the user prompt template.
func renderUserPrompt(title, authors, content string) (string, error) {
	var buf bytes.Buffer
	err := userPromptTmpl.Execute(&buf, struct {
		Title, Authors, Content string
	}{title, authors, content})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
