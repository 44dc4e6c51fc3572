package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// chapter is one rendered chapter entry.
type chapter struct {
	Title string
	Start string
	Body  string
}

var (
	titleKeys = []string{"title", "headline", "gist", "name"}
	bodyKeys  = []string{"summary", "description", "text", "content"}
	startKeys = []string{"start", "start_time", "startTime", "timestamp"}
	textKeys  = []string{"text", "transcript", "content"}
	listKeys  = []string{"segments", "chapters", "utterances", "results"}
)

// summaryText returns the summary as markdown text. Non-string summaries are
// rendered as indented JSON.
func summaryText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return prettyJSON(raw)
}

// chapterEntries interprets a chapter document: either a list of objects or
// an object wrapping such a list.
func chapterEntries(raw json.RawMessage) ([]chapter, bool) {
	items, ok := objectList(raw)
	if !ok {
		return nil, false
	}

	out := make([]chapter, 0, len(items))
	for i, item := range items {
		ch := chapter{
			Title: firstString(item, titleKeys),
			Body:  firstString(item, bodyKeys),
			Start: firstTimestamp(item, startKeys),
		}
		if ch.Title == "" {
			ch.Title = fmt.Sprintf("Chapter %d", i+1)
		}
		out = append(out, ch)
	}
	return out, true
}

// transcriptLines extracts readable lines from a transcript document.
// Consecutive duplicate lines are dropped.
func transcriptLines(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 {
		return nil, false
	}

	var lines []string
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		lines = strings.Split(s, "\n")
	} else if items, ok := objectList(raw); ok {
		for _, item := range items {
			if t := firstString(item, textKeys); t != "" {
				lines = append(lines, t)
			}
		}
	} else {
		var obj map[string]interface{}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, false
		}
		t := firstString(obj, textKeys)
		if t == "" {
			return nil, false
		}
		lines = strings.Split(t, "\n")
	}

	out := make([]string, 0, len(lines))
	prev := ""
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || l == prev {
			continue
		}
		out = append(out, l)
		prev = l
	}
	return out, len(out) > 0
}

func objectList(raw json.RawMessage) ([]map[string]interface{}, bool) {
	var items []map[string]interface{}
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, true
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, false
	}
	for _, k := range listKeys {
		if inner, ok := wrapper[k]; ok {
			if err := json.Unmarshal(inner, &items); err == nil {
				return items, true
			}
		}
	}
	return nil, false
}

func firstString(obj map[string]interface{}, keys []string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func firstTimestamp(obj map[string]interface{}, keys []string) string {
	for _, k := range keys {
		switch v := obj[k].(type) {
		case float64:
			return formatSeconds(v)
		case string:
			if v != "" {
				return v
			}
		}
	}
	return ""
}

// formatSeconds renders seconds as HH:MM:SS. Values above a day are assumed
// to be milliseconds.
func formatSeconds(v float64) string {
	if v > 86400 {
		v /= 1000
	}
	total := int(v)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func prettyJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
