package dom

import (
	"errors"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoHead is returned when a document has no <head> element.
var ErrNoHead = errors.New("document has no head element")

// AppendStylesheetHref appends a stylesheet link for href to the head of doc.
func AppendStylesheetHref(doc *html.Node, href string) (*html.Node, error) {
	return AppendStylesheet(doc, map[string]string{"href": href})
}

// AppendStylesheet appends a <link> element with attrs to the head of doc.
// rel defaults to "stylesheet". Attributes are written in key order.
func AppendStylesheet(doc *html.Node, attrs map[string]string) (*html.Node, error) {
	head := findHead(doc)
	if head == nil {
		return nil, ErrNoHead
	}

	keys := make([]string, 0, len(attrs)+1)
	for k := range attrs {
		keys = append(keys, k)
	}
	if _, ok := attrs["rel"]; !ok {
		keys = append(keys, "rel")
	}
	sort.Strings(keys)

	link := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Link,
		Data:     "link",
	}
	for _, k := range keys {
		v, ok := attrs[k]
		if !ok {
			v = "stylesheet"
		}
		link.Attr = append(link.Attr, html.Attribute{Key: k, Val: v})
	}
	head.AppendChild(link)
	return link, nil
}

func findHead(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Head {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if h := findHead(c); h != nil {
			return h
		}
	}
	return nil
}
