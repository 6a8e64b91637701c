package formatter

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/fatih/color"
	tt "github.com/gnoswap-labs/rulecat/internal/types"
)

var (
	errorStyle    = color.New(color.FgRed, color.Bold)
	warningStyle  = color.New(color.FgHiYellow, color.Bold)
	ruleStyle     = color.New(color.FgYellow, color.Bold)
	fileStyle     = color.New(color.FgCyan, color.Bold)
	lineStyle     = color.New(color.FgHiBlue, color.Bold)
	messageStyle  = color.New(color.FgRed, color.Bold)
	categoryStyle = color.New(color.FgMagenta)
	noteStyle     = color.New(color.FgGreen, color.Bold)
	noStyle       = color.New(color.FgWhite)
)

const violationTemplate = `{{header .Severity .Rule .Category -}}
{{location .Padding .Filename .Line .Column}}
{{message .Padding .Message}}
{{- if .URL }}
{{docs .Padding .URL}}
{{- end }}
`

var violationTmpl = template.Must(template.New("violation").Funcs(template.FuncMap{
	"header":   header,
	"location": location,
	"message":  message,
	"docs":     docs,
}).Parse(violationTemplate))

// ViolationData is the template input for one violation.
type ViolationData struct {
	Severity tt.Severity
	Rule     string
	Category string
	Filename string
	Padding  string
	Line     int
	Column   int
	Message  string
	URL      string
}

// WriteText renders results as human readable, colored text.
func WriteText(w io.Writer, results []tt.RuleResult) error {
	_, err := io.WriteString(w, GenerateFormattedResults(results))
	return err
}

// GenerateFormattedResults formats every result, file by file.
func GenerateFormattedResults(results []tt.RuleResult) string {
	var builder strings.Builder
	for _, r := range results {
		if len(r.Violations) == 0 {
			builder.WriteString(fileStyle.Sprint(r.FileName))
			builder.WriteString(noStyle.Sprint(": all violations suppressed\n\n"))
			continue
		}
		for _, v := range r.Violations {
			builder.WriteString(buildViolation(r.FileName, v))
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

func buildViolation(fileName string, v tt.Violation) string {
	rule := v.RuleName
	if rule == "" {
		rule = "(engine)"
	}
	data := ViolationData{
		Severity: v.Severity,
		Rule:     rule,
		Category: string(v.Category),
		Filename: fileName,
		Padding:  strings.Repeat(" ", calculateMaxLineNumWidth(v.Line)),
		Line:     v.Line,
		Column:   v.Column,
		Message:  v.Message,
		URL:      v.URL,
	}

	var buf bytes.Buffer
	if err := violationTmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting violation: %v", err)
	}
	return buf.String()
}

// utils functions used in the text template

func header(severity tt.Severity, rule string, category string) string {
	var endString string
	switch severity {
	case tt.SeverityError:
		endString = errorStyle.Sprint("error: ")
	case tt.SeverityWarn:
		endString = warningStyle.Sprint("warning: ")
	default:
		endString = messageStyle.Sprintf("%s: ", severity)
	}
	endString += ruleStyle.Sprint(rule)
	endString += categoryStyle.Sprintf(" [%s]\n", category)
	return endString
}

func location(padding string, filename string, line int, column int) string {
	return lineStyle.Sprintf("%s--> ", padding) + fileStyle.Sprintf("%s:%d:%d", filename, line, column)
}

func message(padding string, msg string) string {
	return lineStyle.Sprintf("%s = ", padding) + messageStyle.Sprint(msg)
}

func docs(padding string, url string) string {
	return lineStyle.Sprintf("%s = ", padding) + noteStyle.Sprint("docs: ") + noStyle.Sprint(url)
}

func calculateMaxLineNumWidth(line int) int {
	return len(fmt.Sprintf("%d", line))
}
