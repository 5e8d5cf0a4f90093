package api

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/thesavant42/gitsome-header/internal/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/publicsuffix"
)

const (
	blogTimeout  = 20 * time.Second
	maxBlogBytes = 2 * 1024 * 1024 // 2MB limit for blog pages
)

// BlogClient fetches blog pages and converts them to Markdown for the
// embedded viewer
type BlogClient struct {
	httpClient *http.Client
	logger     *log.Logger
	maxBytes   int64
}

// NewBlogClient creates a blog page client. logger may be nil.
func NewBlogClient(logger *log.Logger) *BlogClient {
	return &BlogClient{
		httpClient: &http.Client{
			Timeout: blogTimeout,
		},
		logger:   logger,
		maxBytes: maxBlogBytes,
	}
}

// FetchPage downloads pageURL and converts the document to Markdown
func (c *BlogClient) FetchPage(ctx context.Context, pageURL string) (*models.BlogPage, error) {
	u, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return nil, fmt.Errorf("invalid blog URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid blog URL: missing host")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.8")

	if c.logger != nil {
		c.logger.Info("GET blog", "url", u.String())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Blog request failed", "url", u.String(), "error", err)
		}
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if c.logger != nil {
			c.logger.Error("Blog fetch error", "url", u.String(), "status", resp.StatusCode)
		}
		return nil, fmt.Errorf("blog returned status %d", resp.StatusCode)
	}

	finalURL := resp.Request.URL
	body := io.LimitReader(resp.Body, c.maxBytes)

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch {
	case mediaType == "" || mediaType == "text/html" || mediaType == "application/xhtml+xml":
		page, err := ConvertHTML(body, finalURL)
		if err != nil {
			return nil, err
		}
		page.FetchedAt = time.Now().UTC()
		return page, nil

	case strings.HasPrefix(mediaType, "text/"):
		raw, err := io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("failed to read page: %w", err)
		}
		return &models.BlogPage{
			URL:       finalURL.String(),
			Title:     finalURL.Host,
			Markdown:  "```\n" + strings.TrimRight(string(raw), "\n") + "\n```",
			FetchedAt: time.Now().UTC(),
		}, nil
	}

	return nil, fmt.Errorf("unsupported content type %q", mediaType)
}

// SiteDomain returns the registrable domain of a URL for display
// (e.g. "https://blog.example.co.uk/x" -> "example.co.uk"). It falls back to
// the hostname when no public suffix applies.
func SiteDomain(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	host := strings.TrimSuffix(u.Hostname(), ".")
	if host == "" {
		return ""
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}

// =============================================================================
// HTML to Markdown
// =============================================================================

// elements that never carry readable article content
var skippedElements = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Nav:      true,
	atom.Footer:   true,
	atom.Aside:    true,
	atom.Form:     true,
	atom.Svg:      true,
	atom.Iframe:   true,
	atom.Template: true,
	atom.Button:   true,
	atom.Select:   true,
	atom.Input:    true,
}

var blockElements = map[atom.Atom]bool{
	atom.P:          true,
	atom.Div:        true,
	atom.Section:    true,
	atom.Article:    true,
	atom.Main:       true,
	atom.Header:     true,
	atom.Figure:     true,
	atom.Figcaption: true,
	atom.Table:      true,
	atom.Tr:         true,
	atom.Dl:         true,
	atom.Dt:         true,
	atom.Dd:         true,
	atom.Body:       true,
}

var headingLevels = map[atom.Atom]int{
	atom.H1: 1, atom.H2: 2, atom.H3: 3, atom.H4: 4, atom.H5: 5, atom.H6: 6,
}

type markdownWriter struct {
	base  *url.URL
	links []models.PageLink
	pre   int
}

// ConvertHTML parses an HTML document and renders its readable content as
// Markdown. Relative links are resolved against base, which may be nil.
func ConvertHTML(r io.Reader, base *url.URL) (*models.BlogPage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &models.BlogPage{}
	if base != nil {
		page.URL = base.String()
	}

	page.Title = normalizeTitle(doc.Find("head title").First().Text())
	if page.Title == "" {
		og, _ := doc.Find(`meta[property="og:title"]`).First().Attr("content")
		page.Title = normalizeTitle(og)
	}
	if page.Title == "" {
		page.Title = normalizeTitle(doc.Find("h1").First().Text())
	}

	root := doc.Find("article").First()
	if root.Length() == 0 {
		root = doc.Find("main").First()
	}
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}
	if root.Length() == 0 {
		root = doc.Selection
	}

	w := &markdownWriter{base: base}
	var b strings.Builder
	for _, n := range root.Nodes {
		b.WriteString(w.node(n))
	}
	page.Markdown = normalizeMarkdown(b.String())
	page.Links = w.links

	return page, nil
}

func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (w *markdownWriter) children(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(w.node(c))
	}
	return b.String()
}

func (w *markdownWriter) node(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		if w.pre > 0 {
			return n.Data
		}
		return collapseSpace(n.Data)
	case html.ElementNode:
	case html.DocumentNode:
		return w.children(n)
	default:
		return ""
	}

	if skippedElements[n.DataAtom] {
		return ""
	}

	if level, ok := headingLevels[n.DataAtom]; ok {
		text := inlineText(w.children(n))
		if text == "" {
			return ""
		}
		return "\n\n" + strings.Repeat("#", level) + " " + text + "\n\n"
	}

	if blockElements[n.DataAtom] {
		return "\n\n" + w.children(n) + "\n\n"
	}

	switch n.DataAtom {
	case atom.Br:
		return "\n"
	case atom.Hr:
		return "\n\n---\n\n"
	case atom.Ul, atom.Ol:
		return "\n\n" + w.list(n) + "\n\n"
	case atom.Pre:
		body := strings.Trim(textContent(n), "\n")
		return "\n\n```\n" + body + "\n```\n\n"
	case atom.Code:
		text := strings.TrimSpace(textContent(n))
		if text == "" {
			return ""
		}
		return "`" + text + "`"
	case atom.Strong, atom.B:
		return wrapInline(w.children(n), "**")
	case atom.Em, atom.I:
		return wrapInline(w.children(n), "_")
	case atom.A:
		return w.link(n)
	case atom.Img:
		alt := strings.TrimSpace(attr(n, "alt"))
		if alt == "" {
			return ""
		}
		return "[image: " + alt + "]"
	case atom.Blockquote:
		inner := normalizeMarkdown(w.children(n))
		if inner == "" {
			return ""
		}
		lines := strings.Split(inner, "\n")
		for i, l := range lines {
			lines[i] = strings.TrimRight("> "+l, " ")
		}
		return "\n\n" + strings.Join(lines, "\n") + "\n\n"
	case atom.Td, atom.Th:
		return " " + w.children(n) + " "
	}

	return w.children(n)
}

func (w *markdownWriter) list(n *html.Node) string {
	ordered := n.DataAtom == atom.Ol
	var items []string
	i := 1
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Li {
			continue
		}
		marker := "- "
		if ordered {
			marker = fmt.Sprintf("%d. ", i)
		}
		i++

		body := normalizeMarkdown(w.children(c))
		if body == "" {
			continue
		}
		indent := strings.Repeat(" ", len(marker))
		items = append(items, marker+strings.ReplaceAll(body, "\n", "\n"+indent))
	}
	return strings.Join(items, "\n")
}

func (w *markdownWriter) link(n *html.Node) string {
	text := inlineText(w.children(n))
	target := w.resolve(attr(n, "href"))
	if target == "" {
		return text
	}
	if text == "" {
		text = target
	}
	w.links = append(w.links, models.PageLink{
		Index: len(w.links) + 1,
		Text:  text,
		URL:   target,
	})
	return "[" + text + "](" + target + ")"
}

func (w *markdownWriter) resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if w.base != nil {
		u = w.base.ResolveReference(u)
	}
	return u.String()
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func wrapInline(s, marker string) string {
	text := inlineText(s)
	if text == "" {
		return ""
	}
	return marker + text + marker
}

// inlineText flattens rendered children onto a single line
func inlineText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// collapseSpace folds whitespace runs to one space, keeping a single space at
// either edge so adjacent inline nodes stay separated
func collapseSpace(s string) string {
	if s == "" {
		return ""
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	out := strings.Join(fields, " ")
	if unicode.IsSpace(rune(s[0])) {
		out = " " + out
	}
	if unicode.IsSpace(rune(s[len(s)-1])) {
		out += " "
	}
	return out
}

// normalizeMarkdown trims trailing spaces, drops blank lines at either end and
// collapses runs of blank lines to one
func normalizeMarkdown(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.TrimRight(l, " \t")
		if strings.TrimSpace(l) == "" {
			if len(out) > 0 && !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		// a single leading space left over from collapsed text
		if strings.HasPrefix(l, " ") && !strings.HasPrefix(l, "  ") {
			l = l[1:]
		}
		out = append(out, l)
		blank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
