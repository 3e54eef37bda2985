package service

import (
	"fmt"
	"html"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"

	"change_tracker/internal/domain"
)

const roadmapSubject = "New changes on roadmap"

// renderer builds the text and html parts of notifications. Feed bodies are
// untrusted, so the html part is sanitized and the text part is markdown.
type renderer struct {
	md     *converter.Converter
	policy *bluemonday.Policy
}

func newRenderer() *renderer {
	return &renderer{
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

func (r *renderer) markdown(body, sourceURL string) string {
	if body == "" {
		return ""
	}
	result, err := r.md.ConvertString(body, converter.WithDomain(sourceURL))
	if err != nil || strings.TrimSpace(result) == "" {
		return r.policy.Sanitize(body)
	}
	return strings.TrimSpace(result)
}

func (r *renderer) item(feedTitle string, item domain.FeedItem) (subject, text, htmlBody string) {
	subject = item.Title + " | " + feedTitle

	text = item.URL + "\n\n" + r.markdown(item.Body, item.URL)

	link := html.EscapeString(item.URL)
	htmlBody = fmt.Sprintf(`<p><a href="%s">%s</a></p>%s`, link, link, r.policy.Sanitize(item.Body))

	return subject, text, htmlBody
}

func (r *renderer) sourceDisabled(src domain.Source, failedCount int, reason error) (subject, text, htmlBody string) {
	subject = "Source disabled: " + src.URL

	text = fmt.Sprintf("Source %s was disabled after %d failed checks.\n\nLast error: %v", src.URL, failedCount, reason)

	htmlBody = fmt.Sprintf("<p>Source <code>%s</code> was disabled after %d failed checks.</p><p>Last error: %s</p>",
		html.EscapeString(src.URL), failedCount, html.EscapeString(fmt.Sprint(reason)))

	return subject, text, htmlBody
}

func (r *renderer) roadmapChanges(count int, link string) (subject, text, htmlBody string) {
	text = fmt.Sprintf("%d changes detected: %s", count, link)

	escaped := html.EscapeString(link)
	htmlBody = fmt.Sprintf(`<p>%d changes detected: <a href="%s">%s</a></p>`, count, escaped, escaped)

	return roadmapSubject, text, htmlBody
}
