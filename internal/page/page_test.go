package page

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/quick"

	"golang.org/x/net/html"

	"mdpage/internal/textutil"
)

const sample = "# Title\n\nSome **bold** and a `<tag>` and an \"quote\".\n"

func basePage() Page {
	return Page{
		Lang:        "en",
		Title:       "Title",
		RendererURL: "https://cdn.jsdelivr.net/npm/marked/marked.min.js",
		GFM:         true,
		Breaks:      true,
		HintLabel:   "To save as PDF:",
		HintText:    "Cmd+P",
		Source:      sample,
	}
}

func TestRenderEscapesSource(t *testing.T) {
	out, err := Render(basePage())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	region, ok := SourceRegion(out)
	if !ok {
		t.Fatalf("expected md-source region in %q", out)
	}
	if !bytes.Contains(region, []byte("&lt;tag&gt;")) {
		t.Fatalf("expected escaped tag in region, got %q", region)
	}
	if bytes.Contains(region, []byte("<tag>")) {
		t.Fatalf("raw tag leaked into region: %q", region)
	}
	if !bytes.Contains(region, []byte("&quot;quote&quot;")) {
		t.Fatalf("expected escaped quotes in region, got %q", region)
	}
	if got := textutil.Unescape(string(region)); got != sample {
		t.Fatalf("region does not unescape to the source: %q", got)
	}
}

func TestRenderLayout(t *testing.T) {
	out, err := Render(basePage())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	page := string(out)
	for _, want := range []string{
		"<!DOCTYPE html>\n<html lang=\"en\">",
		"<title>Title</title>",
		`<script src="https://cdn.jsdelivr.net/npm/marked/marked.min.js"></script>`,
		`<div class="print-hint"><strong>To save as PDF:</strong> Cmd+P</div>`,
		`<div id="content"></div>`,
		"marked.setOptions({ gfm: true, breaks: true });",
		`.replace(/&#39;/g, "'").replace(/&amp;/g, '&')`,
		"</body>\n</html>\n",
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected page to contain %q\n%s", want, page)
		}
	}
	if strings.Contains(page, "<noscript>") {
		t.Fatal("expected no fallback block when Fallback is empty")
	}
}

func TestLoaderUndoesEntitiesInOrder(t *testing.T) {
	out, err := Render(basePage())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	page := string(out)

	want := `var raw = el.textContent.replace(/&lt;/g, '<').replace(/&gt;/g, '>').replace(/&quot;/g, '"').replace(/&#39;/g, "'").replace(/&amp;/g, '&');`
	if !strings.Contains(page, want) {
		t.Fatalf("expected loader chain %q in page", want)
	}

	last := -1
	for _, entity := range textutil.Entities {
		idx := strings.Index(page, ".replace(/"+entity+"/g")
		if idx < 0 {
			t.Fatalf("loader does not undo %s", entity)
		}
		if idx <= last {
			t.Fatalf("loader undoes %s out of order", entity)
		}
		last = idx
	}
	if textutil.Entities[len(textutil.Entities)-1] != "&amp;" {
		t.Fatal("&amp; must be undone last")
	}
}

func TestRenderOptionalBlocks(t *testing.T) {
	p := basePage()
	p.HintLabel = ""
	p.HintText = ""
	p.GFM = false
	p.Breaks = false
	p.Fallback = "<h1>Title</h1>"

	out, err := Render(p)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	page := string(out)
	if strings.Contains(page, "print-hint\">") {
		t.Fatal("expected hint block to be omitted")
	}
	if !strings.Contains(page, `<noscript><div id="fallback"><h1>Title</h1></div></noscript>`) {
		t.Fatalf("expected fallback block, got %s", page)
	}
	if !strings.Contains(page, "gfm: false, breaks: false") {
		t.Fatalf("expected renderer options, got %s", page)
	}
}

func TestRenderEscapesMetadata(t *testing.T) {
	p := basePage()
	p.Title = `</title><script>alert("x")</script>`
	p.Lang = `en" onload="x`
	p.RendererURL = `https://example.com/m.js"></script><script>alert(1)`

	out, err := Render(p)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if bytes.Contains(out, []byte("<script>alert")) {
		t.Fatalf("metadata broke out of its context: %s", out)
	}
	if !bytes.Contains(out, []byte("<title>&lt;/title&gt;&lt;script&gt;")) {
		t.Fatalf("expected escaped title, got %s", out)
	}
	assertWellFormed(t, out)
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := Render(basePage())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := Render(basePage())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("expected identical output for identical input")
	}
}

func TestRenderIsWellFormedForAnySource(t *testing.T) {
	hostile := []string{
		"",
		"</script><script>alert(1)</script>",
		"<!-- unterminated comment",
		"<![CDATA[ x ]]>",
		"<html><body></body></html>",
		"&lt;/script&gt;",
		"<div><span>unbalanced",
		"'single' and \"double\"",
	}
	for _, src := range hostile {
		p := basePage()
		p.Source = src
		out, err := Render(p)
		if err != nil {
			t.Fatalf("Render(%q): %v", src, err)
		}
		assertWellFormed(t, out)
	}

	prop := func(src string) bool {
		p := basePage()
		p.Source = src
		out, err := Render(p)
		if err != nil {
			return false
		}
		region, ok := SourceRegion(out)
		return ok && textutil.Unescape(string(region)) == src && wellFormed(out) == nil
	}
	if err := quick.Check(prop, nil); err != nil {
		t.Fatal(err)
	}
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

func assertWellFormed(t *testing.T, doc []byte) {
	t.Helper()
	if err := wellFormed(doc); err != nil {
		t.Fatalf("%v\n%s", err, doc)
	}
}

// wellFormed checks for one doctype, one html root, and balanced non-void tags.
func wellFormed(doc []byte) error {
	z := html.NewTokenizer(bytes.NewReader(doc))
	var stack []string
	doctypes, roots := 0, 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			if !errors.Is(z.Err(), io.EOF) {
				return z.Err()
			}
			if doctypes != 1 {
				return errors.New("expected exactly one doctype")
			}
			if roots != 1 {
				return errors.New("expected exactly one html root")
			}
			if len(stack) != 0 {
				return errors.New("unclosed elements: " + strings.Join(stack, ","))
			}
			return nil
		case html.DoctypeToken:
			doctypes++
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "html" {
				roots++
				if len(stack) != 0 {
					return errors.New("nested html element")
				}
			}
			if !voidElements[tag] {
				stack = append(stack, tag)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if len(stack) == 0 || stack[len(stack)-1] != tag {
				return errors.New("unbalanced end tag " + tag)
			}
			stack = stack[:len(stack)-1]
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			if !voidElements[string(name)] {
				return errors.New("self-closing non-void element " + string(name))
			}
		}
	}
}
